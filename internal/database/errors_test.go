package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsMissingTable(t *testing.T) {
	undefined := &pq.Error{Code: "42P01"}

	assert.True(t, IsMissingTable(undefined))
	assert.True(t, IsMissingTable(fmt.Errorf("list tickets: %w", undefined)))
	assert.False(t, IsMissingTable(&pq.Error{Code: "42703"}))
	assert.False(t, IsMissingTable(errors.New("connection refused")))
	assert.False(t, IsMissingTable(nil))
}

func TestIsMissingRelationship(t *testing.T) {
	undefinedColumn := &pq.Error{Code: "42703"}

	assert.True(t, IsMissingRelationship(undefinedColumn))
	assert.False(t, IsMissingRelationship(&pq.Error{Code: "42P01"}))
	assert.False(t, IsMissingRelationship(nil))
}

func TestIsMissingResource(t *testing.T) {
	assert.True(t, IsMissingResource(&pq.Error{Code: "42P01"}))
	assert.True(t, IsMissingResource(&pq.Error{Code: "42703"}))
	assert.False(t, IsMissingResource(&pq.Error{Code: "23505"}))
	assert.False(t, IsMissingResource(sql.ErrNoRows))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(sql.ErrNoRows))
	assert.True(t, IsNotFound(fmt.Errorf("get ticket: %w", sql.ErrNoRows)))
	assert.False(t, IsNotFound(&pq.Error{Code: "42P01"}))
	assert.False(t, IsNotFound(nil))
}
