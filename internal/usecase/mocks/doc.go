// Package mocks holds testify mocks of the usecase interfaces used by the HTTP handlers.
package mocks
