package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"},
		splitList(" https://a.example.com, ,https://b.example.com "))
	assert.Nil(t, splitList(""))
}

func TestParseDurationFallsBack(t *testing.T) {
	assert.Equal(t, 30*time.Minute, parseDuration("30m", time.Hour))
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
}

func TestSuperAdminEnabled(t *testing.T) {
	assert.False(t, SuperAdminConfig{Username: "root"}.Enabled())
	assert.True(t, SuperAdminConfig{Username: "root", PasswordHash: "$2a$10$x"}.Enabled())
}
