package main

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportVectorsCommand_ThenRankFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	model := smallModel(t)

	out, err := executeCommand(t, "import-vectors", "--model", model, "--redis", mr.Addr(), "--prefix", "skills")
	require.NoError(t, err)
	assert.Contains(t, out, `Imported 3 vectors (dim 3) under prefix "skills"`)
	assert.True(t, mr.Exists("skills:vectors"))
	assert.Equal(t, "3", mr.HGet("skills:meta", "dim"))

	worker, tasks := rankFiles(t)
	cfgPath := writeFile(t, "config.json", `{"redis_prefix": "skills"}`)
	out, err = executeCommand(t, "rank", "--config", cfgPath, "--redis", "redis://"+mr.Addr()+"/0", "-w", worker, "-t", tasks, "--format", "tuple")
	require.NoError(t, err)
	assert.JSONEq(t, `[[3, 5, ["Docker"]], [2, 4, ["Kubernetes"]]]`, out)
}

func TestRankCommand_EmptyRedisPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	worker, tasks := rankFiles(t)

	_, err := executeCommand(t, "rank", "--redis", mr.Addr(), "-w", worker, "-t", tasks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run import-vectors first")
}

func TestImportVectorsCommand_RequiresBothSources(t *testing.T) {
	_, err := executeCommand(t, "import-vectors", "--model", smallModel(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--redis is required")

	_, err = executeCommand(t, "import-vectors", "--redis", "localhost:6379")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--model is required")
}
