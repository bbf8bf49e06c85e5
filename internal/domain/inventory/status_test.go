package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

var allStatuses = []string{
	entity.MoveStatusDraft,
	entity.MoveStatusWaiting,
	entity.MoveStatusReady,
	entity.MoveStatusDone,
	entity.MoveStatusCancelled,
}

func moveIn(status string) *entity.StockMove {
	return &entity.StockMove{Status: status, MoveType: entity.MoveTypeIN}
}

// ──────────────────────────────────────────────────────────────────────────────
// ModeStatus: tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_AristasPermitidas(t *testing.T) {
	edges := [][2]string{
		{entity.MoveStatusDraft, entity.MoveStatusWaiting},
		{entity.MoveStatusDraft, entity.MoveStatusCancelled},
		{entity.MoveStatusWaiting, entity.MoveStatusReady},
		{entity.MoveStatusWaiting, entity.MoveStatusCancelled},
		{entity.MoveStatusWaiting, entity.MoveStatusDraft},
		{entity.MoveStatusReady, entity.MoveStatusCancelled},
		{entity.MoveStatusReady, entity.MoveStatusWaiting},
		{entity.MoveStatusCancelled, entity.MoveStatusDraft},
	}
	for _, e := range edges {
		m := moveIn(e[0])
		require.NoError(t, inventory.Transition(m, e[1], inventory.ModeStatus), "%s -> %s", e[0], e[1])
		assert.Equal(t, e[1], m.Status)
	}
}

func TestTransition_DoneEsTerminal(t *testing.T) {
	for _, to := range allStatuses {
		m := moveIn(entity.MoveStatusDone)
		err := inventory.Transition(m, to, inventory.ModeStatus)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "done -> %s", to)
		assert.Equal(t, entity.MoveStatusDone, m.Status)
	}
}

func TestTransition_CanceladoSoloVuelveADraft(t *testing.T) {
	for _, to := range allStatuses {
		m := moveIn(entity.MoveStatusCancelled)
		err := inventory.Transition(m, to, inventory.ModeStatus)
		if to == entity.MoveStatusDraft {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "cancelled -> %s", to)
	}
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	m := moveIn(entity.MoveStatusDraft)
	err := inventory.Transition(m, "archived", inventory.ModeStatus)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.MoveStatusDraft, m.Status)
}

// ready -> done existe en la tabla, pero done solo se alcanza liquidando.
func TestTransition_ModeStatusNuncaProduceDone(t *testing.T) {
	assert.True(t, inventory.CanTransition(entity.MoveStatusReady, entity.MoveStatusDone))
	m := moveIn(entity.MoveStatusReady)
	assert.ErrorIs(t, inventory.Transition(m, entity.MoveStatusDone, inventory.ModeStatus), domain.ErrInvalidTransition)
	assert.Equal(t, entity.MoveStatusReady, m.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// ModeSettlement
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_LiquidacionDesdeEstadosAbiertos(t *testing.T) {
	for _, from := range []string{entity.MoveStatusDraft, entity.MoveStatusWaiting, entity.MoveStatusReady} {
		m := moveIn(from)
		require.NoError(t, inventory.Transition(m, entity.MoveStatusDone, inventory.ModeSettlement))
		assert.Equal(t, entity.MoveStatusDone, m.Status)
	}
}

func TestTransition_LiquidacionGuardas(t *testing.T) {
	assert.ErrorIs(t,
		inventory.Transition(moveIn(entity.MoveStatusDone), entity.MoveStatusDone, inventory.ModeSettlement),
		domain.ErrAlreadySettled)
	assert.ErrorIs(t,
		inventory.Transition(moveIn(entity.MoveStatusCancelled), entity.MoveStatusDone, inventory.ModeSettlement),
		domain.ErrMoveCancelled)
}

func TestAllowedFrom_DevuelveCopia(t *testing.T) {
	out := inventory.AllowedFrom(entity.MoveStatusDraft)
	require.Len(t, out, 2)
	out[0] = "x"
	assert.True(t, inventory.CanTransition(entity.MoveStatusDraft, entity.MoveStatusWaiting))
	assert.Empty(t, inventory.AllowedFrom(entity.MoveStatusDone))
}

func TestTransition_MensajeListaPermitidos(t *testing.T) {
	err := inventory.Transition(moveIn(entity.MoveStatusDraft), entity.MoveStatusReady, inventory.ModeStatus)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "draft -> ready")
	assert.Contains(t, err.Error(), "permitidos: waiting, cancelled")

	err = inventory.Transition(moveIn(entity.MoveStatusDone), entity.MoveStatusDraft, inventory.ModeStatus)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "estado terminal")
}
