package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.October, 1), d)

	for _, bad := range []string{"01/10/2026", "2026-10-1", "2026-13-01", "2026-02-30", "hoje"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "ParseDate(%q)", bad)
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Data Date `json:"data"`
	}

	t.Run("roundtrip", func(t *testing.T) {
		data, err := json.Marshal(payload{Data: NewDate(2026, time.October, 1)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":"2026-10-01"}`, string(data))

		var p payload
		require.NoError(t, json.Unmarshal(data, &p))
		assert.Equal(t, NewDate(2026, time.October, 1), p.Data)
	})

	t.Run("zero marshals to null", func(t *testing.T) {
		data, err := json.Marshal(payload{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":null}`, string(data))
	})

	t.Run("null and blank unmarshal to zero", func(t *testing.T) {
		for _, in := range []string{`{"data":null}`, `{"data":""}`} {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(in), &p))
			assert.True(t, p.Data.IsZero())
		}
	})

	t.Run("strict format only", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"data":"01/10/2026"}`), &p))
	})
}

func TestDateSQL(t *testing.T) {
	d := NewDate(2026, time.October, 1)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, d.Time, v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v, "zero date stores as NULL")

	var scanned Date
	require.NoError(t, scanned.Scan(d.Time))
	assert.Equal(t, d, scanned)

	require.NoError(t, scanned.Scan([]byte("2026-10-01")))
	assert.Equal(t, d, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(42))
}

func TestLessNome(t *testing.T) {
	// locale-aware, case-insensitive, blanks last
	assert.True(t, LessNome("André", "Beatriz"))
	assert.True(t, LessNome("andré", "Beatriz"))
	assert.False(t, LessNome("Beatriz", "André"))
	assert.True(t, LessNome("Beatriz", ""))
	assert.False(t, LessNome("", "Beatriz"))
	assert.False(t, LessNome("", ""))
}

func TestComparePTBR(t *testing.T) {
	assert.Negative(t, ComparePTBR("água", "Zebra"))
	assert.Positive(t, ComparePTBR("zebra", "Água"))
	assert.Zero(t, ComparePTBR("José", "josé"))
}
