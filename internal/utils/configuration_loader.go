package utils

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
	sliceElementSeparatorConstant                   = ","
)

// ConfigurationLoader wraps Viper to load structured configuration files and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	environmentKeyReplacer    *strings.Replacer
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            slices.Clone(searchPaths),
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// SetEmbeddedConfiguration stores built-in configuration merged beneath any configuration file.
// Empty data clears it.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)
	loader.embeddedConfiguration = nil
	if len(configurationData) > 0 {
		loader.embeddedConfiguration = bytes.Clone(configurationData)
	}
}

// LoadConfiguration populates targetConfiguration from, in increasing precedence, defaultValues,
// the embedded configuration, the configuration file, and environment variables.
// A missing configuration file in the search paths is not an error; an explicit missing file is.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := loader.newViperInstance(defaultValues)

	if embeddedError := loader.mergeEmbeddedConfiguration(viperInstance); embeddedError != nil {
		return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, embeddedError)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	var notFoundError viper.ConfigFileNotFoundError
	if readError := viperInstance.MergeInConfig(); readError != nil && !errors.As(readError, &notFoundError) {
		return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
	}

	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, viper.DecodeHook(configurationDecodeHook())); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

func (loader *ConfigurationLoader) newViperInstance(defaultValues map[string]any) *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)
	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}
	return viperInstance
}

func (loader *ConfigurationLoader) mergeEmbeddedConfiguration(viperInstance *viper.Viper) error {
	if len(loader.embeddedConfiguration) == 0 {
		return nil
	}

	embeddedType := loader.embeddedConfigurationType
	if len(embeddedType) == 0 {
		embeddedType = loader.configurationType
	}

	viperInstance.SetConfigType(embeddedType)
	defer viperInstance.SetConfigType(loader.configurationType)
	return viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration))
}

// configurationDecodeHook converts duration strings and comma-separated environment values.
func configurationDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(sliceElementSeparatorConstant),
	)
}
