package model

// Config holds the application settings loaded from the config file and the environment.
type Config struct {
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	DatasetFile string `json:"dataset_file" yaml:"dataset_file"`

	UserStoreType string `json:"user_store_type" yaml:"user_store_type"`
	UserFile      string `json:"user_file" yaml:"user_file"`
	SQLiteFile    string `json:"sqlite_file" yaml:"sqlite_file"`
	PostgresDSN   string `json:"postgres_dsn" yaml:"postgres_dsn"`
	BadgerDir     string `json:"badger_dir" yaml:"badger_dir"`
	RedisAddr     string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `json:"redis_password" yaml:"redis_password"`
	RedisDB       int    `json:"redis_db" yaml:"redis_db"`
	RedisKey      string `json:"redis_key" yaml:"redis_key"`

	PasswordPolicy string `json:"password_policy" yaml:"password_policy"`

	LogFolder  string `json:"log_folder" yaml:"log_folder"`
	CommandLog string `json:"command_log" yaml:"command_log"`
	ErrorLog   string `json:"error_log" yaml:"error_log"`
	InfoLog    string `json:"info_log" yaml:"info_log"`
	LogLevel   string `json:"log_level" yaml:"log_level"`

	HistoryFile string `json:"history_file" yaml:"history_file"`

	DefaultUser         string `json:"default_user" yaml:"default_user"`
	DefaultUserActive   bool   `json:"default_user_active" yaml:"default_user_active"`
	DefaultUserPassword string `json:"default_user_password" yaml:"default_user_password"`
}
