// Package mocks holds testify mocks of the service interfaces.
package mocks
