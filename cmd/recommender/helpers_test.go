package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/task-recommender/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args against clean flag state
// and returns everything written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// isolateEnv hides configuration a developer's .env may have set.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvModelPath, config.EnvRedisURL, config.EnvDatabaseURL,
		config.EnvPort, config.EnvLogLevel, config.EnvLogFormat,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(config.EnvLogLevel, "none")
}

// writeModel writes a text vector model with the given vectors.
func writeModel(t *testing.T, vectors map[string][]float64) string {
	t.Helper()
	dim := 0
	var sb strings.Builder
	for tag, vec := range vectors {
		dim = len(vec)
		sb.WriteString(tag)
		for _, v := range vec {
			sb.WriteString(fmt.Sprintf(" %g", v))
		}
		sb.WriteString("\n")
	}
	content := fmt.Sprintf("%d %d\n%s", len(vectors), dim, sb.String())
	return writeFile(t, "model.txt", content)
}

// writeOneHotModel gives every tag its own axis, so tag similarity depends
// only on shared tags.
func writeOneHotModel(t *testing.T, tags []string) string {
	t.Helper()
	vectors := make(map[string][]float64, len(tags))
	for i, tag := range tags {
		vec := make([]float64, len(tags))
		vec[i] = 1
		vectors[tag] = vec
	}
	return writeModel(t, vectors)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// smallModel covers the tags used by the rank tests.
func smallModel(t *testing.T) string {
	return writeModel(t, map[string][]float64{
		"Docker":     {1, 0, 0},
		"Kubernetes": {0.8, 0.6, 0},
		"R":          {0, 0, 1},
	})
}
