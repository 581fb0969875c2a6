package mysql

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestBuildDSNReportsMatchedRows(t *testing.T) {
	v := viper.New()
	v.Set("database.username", "timebank")
	v.Set("database.password", "secret")
	v.Set("database.host", "localhost")
	v.Set("database.port", 3306)
	v.Set("database.name", "timebank")

	dsn := buildDSN(v)

	assert.Equal(t, "timebank:secret@tcp(localhost:3306)/timebank?parseTime=true&multiStatements=false&clientFoundRows=true", dsn)
	// an idempotent UPDATE (same values, or re-broadcasting an already
	// broadcasted job) must still count as one affected row
	assert.Contains(t, dsn, "clientFoundRows=true")
}
