package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/rollupchain/archive"
	"github.com/0xPolygon/rollupchain/batchchain"
	"github.com/0xPolygon/rollupchain/log"
	"github.com/0xPolygon/rollupchain/submitter"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg.
	FlagCfg = "cfg"
	// FlagComponents is the flag for components.
	FlagComponents = "components"
	// FlagSaveConfigPath is the flag to save the final configuration file
	FlagSaveConfigPath = "save-config-path"

	EnvVarPrefix       = "ROLLUPCHAIN"
	ConfigType         = "toml"
	SaveConfigFileName = "rollupchain_config.toml"

	DefaultCreationFilePermissions = os.FileMode(0600)
)

/*
Config represents the configuration of a rollupchain node.
The file is [TOML format], any value can be overridden with an environment
variable named ROLLUPCHAIN_<Section>_<Field>, e.g. ROLLUPCHAIN_LOG_LEVEL=debug

[TOML format]: https://en.wikipedia.org/wiki/TOML
*/
type Config struct {
	// Configure Log level for all the services, allow also to store the logs in a file
	Log log.Config
	// Chain is the configuration shared by the transaction and the state chains
	Chain batchchain.Config
	// Archive is the storage of headers, elements and proofs
	Archive archive.Config
	// RPC is the config for the RPC server
	RPC jRPC.Config
	// Submitter is the config of the batch submitter loop
	Submitter submitter.Config
}

// Load loads the configuration from the files given by the cfg flag on top of the default values
func Load(ctx *cli.Context) (*Config, error) {
	filesData, err := readFiles(ctx.StringSlice(FlagCfg))
	if err != nil {
		return nil, fmt.Errorf("error reading files: %w", err)
	}
	return LoadFile(filesData, ctx.String(FlagSaveConfigPath))
}

// LoadFile renders the defaults plus files and decodes the result.
// If saveConfigPath is not empty the rendered config is written there.
func LoadFile(files []FileData, saveConfigPath string) (*Config, error) {
	fileData := make([]FileData, 0, len(files)+2) //nolint:mnd
	fileData = append(fileData, FileData{Name: "default_vars", Content: DefaultVars})
	fileData = append(fileData, FileData{Name: "default_values", Content: DefaultValues})
	fileData = append(fileData, files...)

	rendered, err := NewRenderer(fileData, EnvVarPrefix).Render()
	if err != nil {
		return nil, err
	}
	if saveConfigPath != "" {
		fullPath := filepath.Join(saveConfigPath, SaveConfigFileName)
		if err := os.WriteFile(fullPath, []byte(rendered), DefaultCreationFilePermissions); err != nil {
			return nil, fmt.Errorf("error writing config file %s: %w", fullPath, err)
		}
		log.Infof("rendered config saved to %s", fullPath)
	}
	return LoadFileFromString(rendered, ConfigType)
}

// LoadFileFromString decodes an already rendered config
func LoadFileFromString(configData string, configType string) (*Config, error) {
	expectedKeys, err := defaultKeys()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := loadString(cfg, configData, configType, EnvVarPrefix, expectedKeys); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfigToString returns the config as JSON
func SaveConfigToString(cfg Config) (string, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func defaultKeys() ([]string, error) {
	v := viper.New()
	v.SetConfigType(ConfigType)
	if err := v.ReadConfig(strings.NewReader(DefaultValues)); err != nil {
		return nil, fmt.Errorf("error reading default values: %w", err)
	}
	return v.AllKeys(), nil
}

func loadString(cfg *Config, configData, configType, envPrefix string, expectedKeys []string) error {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.ReadConfig(bytes.NewBufferString(configData)); err != nil {
		return err
	}
	decodeHooks := []viper.DecoderConfigOption{
		// this allows arrays to be decoded from env var separated by ",", example: MY_VAR="value1,value2,value3"
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(), mapstructure.StringToSliceHookFunc(","))),
	}
	if err := v.Unmarshal(cfg, decodeHooks...); err != nil {
		return err
	}
	for _, key := range v.AllKeys() {
		if !slices.Contains(expectedKeys, key) {
			log.Warnf("field %s in config file is unknown, it will be ignored", key)
		}
	}
	return nil
}

func readFiles(files []string) ([]FileData, error) {
	result := make([]FileData, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", file, err)
		}
		fileContent := string(content)
		if ext := strings.TrimPrefix(filepath.Ext(file), "."); ext != ConfigType {
			fileContent, err = convertFileToToml(fileContent, ext)
			if err != nil {
				return nil, fmt.Errorf("error converting file %s from %s to TOML: %w", file, ext, err)
			}
		}
		result = append(result, FileData{Name: file, Content: fileContent})
	}
	return result, nil
}
