package service

import "fmt"

// Errores de negocio exportados (los usa el controller y el consumer)

// ValidationError indica que al evento o request le falta un campo
// obligatorio. Se responde como 400, nombrando el campo.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing field: %s", e.Field)
}

// StorageError envuelve un fallo del store subyacente. Se responde como 500.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "error de almacenamiento: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
