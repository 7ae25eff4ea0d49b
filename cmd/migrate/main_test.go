package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMigration = `-- +migrate Up
CREATE TABLE widgets (id SERIAL PRIMARY KEY);

-- +migrate Down
DROP TABLE widgets;
`

func TestExtractSection(t *testing.T) {
	up := extractSection(sampleMigration, "Up")
	assert.Contains(t, up, "CREATE TABLE widgets")
	assert.NotContains(t, up, "DROP TABLE")

	down := extractSection(sampleMigration, "Down")
	assert.Contains(t, down, "DROP TABLE widgets")
	assert.NotContains(t, down, "CREATE TABLE")
}

func TestExtractSectionMissing(t *testing.T) {
	assert.Empty(t, extractSection("SELECT 1;", "Up"))
}
