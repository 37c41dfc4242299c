package escrow

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationGenesis(t *testing.T) {
	program := custodytest.NewAddress(500)

	var opts custody.Options
	raw := fmt.Sprintf(`{"conf": {"escrow": {"program_id": %q}}}`, program)
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	conf, err := LoadConfiguration(db)
	require.NoError(t, err)
	assert.Equal(t, program, conf.ProgramID)
}

func TestConfigurationRequired(t *testing.T) {
	db := store.MemStore()
	err := Initializer{}.FromGenesis(custody.Options{}, db)
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = LoadConfiguration(db)
	assert.True(t, errors.ErrNotFound.Is(err))

	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(`{"conf": {"escrow": {}}}`), &opts))
	err = Initializer{}.FromGenesis(opts, db)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
