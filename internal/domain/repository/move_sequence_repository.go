package repository

import "context"

// MoveSequenceRepository contador persistido de referencias por (tipo, año).
type MoveSequenceRepository interface {
	// Next incrementa y devuelve el consecutivo. Si el par aún no existe lo crea con seed+1.
	// Debe ejecutarse en la misma transacción que inserta el movimiento.
	Next(ctx context.Context, moveType string, year int, seed int) (int, error)
	// Exists indica si ya hay contador para el par.
	Exists(ctx context.Context, moveType string, year int) (bool, error)
}
