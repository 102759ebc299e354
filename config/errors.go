package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidStorageURL indicates the blob store URL is malformed.
	ErrInvalidStorageURL = errors.New("config: invalid storage URL (must be http or https)")

	// ErrInvalidLedgerURL indicates the ledger RPC URL is malformed.
	ErrInvalidLedgerURL = errors.New("config: invalid ledger URL (must be http or https)")

	// ErrInvalidResolverAddr indicates the DNS resolver address is malformed.
	ErrInvalidResolverAddr = errors.New("config: invalid DNS resolver address")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
