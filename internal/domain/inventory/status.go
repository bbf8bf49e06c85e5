package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// TransitionMode distingue un cambio de estado ordinario de la liquidación.
type TransitionMode int

const (
	// ModeStatus sigue la tabla de transiciones; nunca produce done.
	ModeStatus TransitionMode = iota
	// ModeSettlement es la única transición hacia done: desde cualquier estado no terminal y no cancelado.
	ModeSettlement
)

// allowedTransitions tabla de aristas del grafo de estados. done no tiene salidas.
var allowedTransitions = map[string][]string{
	entity.MoveStatusDraft:     {entity.MoveStatusWaiting, entity.MoveStatusCancelled},
	entity.MoveStatusWaiting:   {entity.MoveStatusReady, entity.MoveStatusCancelled, entity.MoveStatusDraft},
	entity.MoveStatusReady:     {entity.MoveStatusDone, entity.MoveStatusCancelled, entity.MoveStatusWaiting},
	entity.MoveStatusDone:      {},
	entity.MoveStatusCancelled: {entity.MoveStatusDraft},
}

// IsValidStatus indica si s es un estado conocido.
func IsValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition consulta la tabla de aristas.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedFrom devuelve una copia de los destinos permitidos desde from.
func AllowedFrom(from string) []string {
	out := make([]string, len(allowedTransitions[from]))
	copy(out, allowedTransitions[from])
	return out
}

// TransitionError describe la transición rechazada junto con los destinos permitidos desde from.
func TransitionError(from, to string) error {
	allowed := AllowedFrom(from)
	if len(allowed) == 0 {
		return fmt.Errorf("%w: %s -> %s (estado terminal)", domain.ErrInvalidTransition, from, to)
	}
	return fmt.Errorf("%w: %s -> %s (permitidos: %s)", domain.ErrInvalidTransition, from, to, strings.Join(allowed, ", "))
}

// Transition cambia el estado de move. Solo toca Status.
//
// En ModeSettlement valida las precondiciones de liquidación (ErrAlreadySettled, ErrMoveCancelled)
// y deja el movimiento en done; los efectos de cantidad los aplica quien llama, en la misma transacción.
func Transition(move *entity.StockMove, to string, mode TransitionMode) error {
	from := move.Status
	if mode == ModeSettlement {
		switch {
		case from == entity.MoveStatusDone:
			return domain.ErrAlreadySettled
		case from == entity.MoveStatusCancelled:
			return domain.ErrMoveCancelled
		case !IsValidStatus(from):
			return fmt.Errorf("%w: estado actual desconocido %q", domain.ErrInvalidTransition, from)
		}
		move.Status = entity.MoveStatusDone
		return nil
	}

	if !IsValidStatus(to) {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidTransition, to)
	}
	if to == entity.MoveStatusDone || !CanTransition(from, to) {
		return TransitionError(from, to)
	}
	move.Status = to
	return nil
}
