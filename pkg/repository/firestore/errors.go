package firestore

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by the Firestore repositories
var (
	ErrNotFound      = goerr.New("document not found")
	ErrAlreadyExists = goerr.New("document already exists")
)
