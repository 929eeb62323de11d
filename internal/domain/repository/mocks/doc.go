// Package mocks holds testify mocks of the repository interfaces.
package mocks
