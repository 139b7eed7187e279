package config

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/0xPolygon/rollupchain/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	cfg, err := LoadFile(nil, "")
	require.NoError(t, err)
	require.Equal(t, log.EnvironmentDevelopment, cfg.Log.Environment)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 10*time.Minute, cfg.Chain.ForceInclusionPeriod.Duration)
	require.Empty(t, cfg.Chain.Submitters)
	require.Equal(t, common.Address{}, cfg.Chain.QueueProducer)
	require.Equal(t, "/tmp/rollupchain/archive.sqlite", cfg.Archive.DBPath)
	require.Equal(t, 5576, cfg.RPC.Port)
	require.Equal(t, "127.0.0.1", cfg.RPC.Host)
	require.False(t, cfg.Chain.PermissionlessSubmission)
	require.Equal(t, 5*time.Second, cfg.Submitter.Interval.Duration)
	require.Equal(t, uint64(100), cfg.Submitter.MaxBatchSize)
	require.Equal(t, -1, cfg.Submitter.MaxRetryAttemptsAfterError)
}

func TestLoadUserFiles(t *testing.T) {
	dir := t.TempDir()
	tomlFile := path.Join(dir, "node.toml")
	require.NoError(t, os.WriteFile(tomlFile, []byte(`
PathRWData = "/data"
[Chain]
  ForceInclusionPeriod = "30s"
  Submitters = ["0x1111111111111111111111111111111111111111", "0x2222222222222222222222222222222222222222"]
  QueueProducer = "0x3333333333333333333333333333333333333333"
[Submitter]
  Address = "0x1111111111111111111111111111111111111111"
`), 0600))
	jsonFile := path.Join(dir, "override.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"Log": {"Level": "debug"}}`), 0600))

	files, err := readFiles([]string{tomlFile, jsonFile})
	require.NoError(t, err)
	cfg, err := LoadFile(files, dir)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 30*time.Second, cfg.Chain.ForceInclusionPeriod.Duration)
	require.Equal(t, []common.Address{
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
	}, cfg.Chain.Submitters)
	require.Equal(t, common.HexToAddress("0x3333333333333333333333333333333333333333"), cfg.Chain.QueueProducer)
	require.Equal(t, cfg.Chain.Submitters[0], cfg.Submitter.Address)
	require.Equal(t, "/data/archive.sqlite", cfg.Archive.DBPath)

	saved, err := os.ReadFile(path.Join(dir, SaveConfigFileName))
	require.NoError(t, err)
	require.Contains(t, string(saved), `DBPath = "/data/archive.sqlite"`)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ROLLUPCHAIN_LOG_LEVEL", "warn")
	t.Setenv("ROLLUPCHAIN_PathRWData", "/env")
	cfg, err := LoadFile(nil, "")
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "/env/archive.sqlite", cfg.Archive.DBPath)
}

func TestReadMissingFile(t *testing.T) {
	_, err := readFiles([]string{path.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
}

func TestSaveConfigToString(t *testing.T) {
	cfg, err := LoadFile(nil, "")
	require.NoError(t, err)
	s, err := SaveConfigToString(*cfg)
	require.NoError(t, err)
	require.Contains(t, s, `"ForceInclusionPeriod"`)
}
