package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultRepositoryURL = "https://github.com/Skymero/WoundSize.git"

type StorageConfig struct {
	Driver    string
	Endpoint  string
	ProjectID string
	APIKey    string
	BucketID  string
	Location  string
	UseSSL    bool
}

type RepositoryConfig struct {
	URL     string
	Allowed []string
	WorkDir string
	Isolate bool
}

type EntryPointConfig struct {
	Loader  string
	Package string
	Strict  bool
}

type RecordsConfig struct {
	MongoURI string
	Database string
}

type Config struct {
	Storage    StorageConfig
	Repository RepositoryConfig
	EntryPoint EntryPointConfig
	Records    RecordsConfig
	Port       int
	LogLevel   string
}

// envBindings maps config keys to the environment variables the function
// runtime provides. Order matters for Validate error reporting.
var envBindings = []struct {
	key string
	env string
}{
	{"storage.driver", "STORAGE_DRIVER"},
	{"storage.endpoint", "APPWRITE_ENDPOINT"},
	{"storage.projectId", "APPWRITE_PROJECT_ID"},
	{"storage.apiKey", "APPWRITE_API_KEY"},
	{"storage.bucketId", "STORAGE_BUCKET_ID"},
	{"storage.location", "STORAGE_LOCATION"},
	{"storage.useSSL", "STORAGE_USE_SSL"},
	{"repository.url", "REPO_URL"},
	{"repository.allowed", "ALLOWED_REPOSITORIES"},
	{"repository.workDir", "CODE_WORKDIR"},
	{"repository.isolate", "CODE_ISOLATE"},
	{"entrypoint.loader", "ENTRYPOINT_LOADER"},
	{"entrypoint.package", "ENTRYPOINT_PACKAGE"},
	{"entrypoint.strict", "ENTRYPOINT_STRICT"},
	{"records.mongoURI", "MONGO_CONNECTION_STRING"},
	{"records.database", "MONGO_DATABASE"},
	{"server.port", "PORT"},
	{"log.level", "LOG_LEVEL"},
}

// New prepares a viper instance reading .env, an optional config file and
// the environment. A missing config file is not an error.
func New(cfgFile string) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)
	for _, binding := range envBindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "appwrite")
	v.SetDefault("storage.location", "us-east-1")
	v.SetDefault("storage.useSSL", true)
	v.SetDefault("repository.url", DefaultRepositoryURL)
	v.SetDefault("repository.allowed", "*")
	v.SetDefault("repository.workDir", filepath.Join(os.TempDir(), "woundfn"))
	v.SetDefault("repository.isolate", true)
	v.SetDefault("entrypoint.loader", "auto")
	v.SetDefault("entrypoint.package", ".")
	v.SetDefault("entrypoint.strict", false)
	v.SetDefault("records.database", "woundfn")
	v.SetDefault("server.port", 3000)
	v.SetDefault("log.level", "info")
}

func Load(v *viper.Viper) Config {
	return Config{
		Storage: StorageConfig{
			Driver:    strings.ToLower(v.GetString("storage.driver")),
			Endpoint:  v.GetString("storage.endpoint"),
			ProjectID: v.GetString("storage.projectId"),
			APIKey:    v.GetString("storage.apiKey"),
			BucketID:  v.GetString("storage.bucketId"),
			Location:  v.GetString("storage.location"),
			UseSSL:    v.GetBool("storage.useSSL"),
		},
		Repository: RepositoryConfig{
			URL:     v.GetString("repository.url"),
			Allowed: splitList(v.Get("repository.allowed")),
			WorkDir: v.GetString("repository.workDir"),
			Isolate: v.GetBool("repository.isolate"),
		},
		EntryPoint: EntryPointConfig{
			Loader:  strings.ToLower(v.GetString("entrypoint.loader")),
			Package: v.GetString("entrypoint.package"),
			Strict:  v.GetBool("entrypoint.strict"),
		},
		Records: RecordsConfig{
			MongoURI: v.GetString("records.mongoURI"),
			Database: v.GetString("records.database"),
		},
		Port:     v.GetInt("server.port"),
		LogLevel: v.GetString("log.level"),
	}
}

// Validate reports the first required key that is not set. It is checked
// on every invocation, never at startup.
func (c Config) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"APPWRITE_ENDPOINT", c.Storage.Endpoint},
		{"APPWRITE_PROJECT_ID", c.Storage.ProjectID},
		{"APPWRITE_API_KEY", c.Storage.APIKey},
		{"STORAGE_BUCKET_ID", c.Storage.BucketID},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &MissingConfigurationError{Key: r.env}
		}
	}

	switch c.Storage.Driver {
	case "appwrite", "minio":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedStorageDriver, c.Storage.Driver)
	}

	return nil
}

func splitList(raw interface{}) []string {
	var items []string
	switch value := raw.(type) {
	case string:
		items = strings.Split(value, ",")
	case []string:
		items = value
	case []interface{}:
		for _, item := range value {
			items = append(items, fmt.Sprint(item))
		}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	if len(result) == 0 {
		return []string{"*"}
	}

	return result
}

type MissingConfigurationError struct {
	Key string
}

func (e *MissingConfigurationError) Error() string {
	return "missing required configuration: " + e.Key
}

var ErrUnsupportedStorageDriver = errors.New("unsupported storage driver")
