// Package model defines the data structures used throughout the hbnb console.
package model

// Config holds every setting the console reads at start-up. Values come from
// the config file first, then from HBNB_* environment variables.
type Config struct {
	StorageType   string `json:"storage_type" yaml:"storage_type" env:"HBNB_TYPE_STORAGE"`
	FilePath      string `json:"file_path" yaml:"file_path" env:"HBNB_FILE_PATH"`
	DatabaseDir   string `json:"database_dir" yaml:"database_dir" env:"HBNB_DB_DIR"`
	DatabaseFile  string `json:"database_file" yaml:"database_file" env:"HBNB_DB_FILE"`
	BadgerDir     string `json:"badger_dir" yaml:"badger_dir" env:"HBNB_BADGER_DIR"`
	LogFolder     string `json:"log_folder" yaml:"log_folder" env:"HBNB_LOG_FOLDER"`
	CommandLog    string `json:"command_log" yaml:"command_log"`
	ErrorLog      string `json:"error_log" yaml:"error_log"`
	InfoLog       string `json:"info_log" yaml:"info_log"`
	LogInfo       bool   `json:"log_info" yaml:"log_info" env:"HBNB_LOG_INFO"`
	HistoryFile   string `json:"history_file" yaml:"history_file" env:"HBNB_HISTORY_FILE"`
	Prompt        string `json:"prompt" yaml:"prompt" env:"HBNB_PROMPT"`
	HashPasswords bool   `json:"hash_passwords" yaml:"hash_passwords" env:"HBNB_HASH_PASSWORDS"`
}
