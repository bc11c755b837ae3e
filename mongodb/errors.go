package mongodb

const messagePrefix = "Mongo plugin configuration error. "

// ErrorKind identifies the configuration rule that was violated.
type ErrorKind int

const (
	InvalidLocalhost ErrorKind = iota + 1
	InvalidDBName
	InvalidHost
	InvalidPort
	InvalidAuth
	InvalidAuthCredentials
	ConflictingVisibility
	InvalidCollections
)

// messages are matched on by configuration consumers, they must not change.
var messages = map[ErrorKind]string{
	InvalidLocalhost:       "If 'localhost' config is provided, it must be a boolean",
	InvalidDBName:          "'dbName' is required and it must be a string",
	InvalidHost:            "If 'host' is provided, it must be a string",
	InvalidPort:            "If 'port' is provided, it must be an integer",
	InvalidAuth:            "If 'auth' is provided, it must be an object",
	InvalidAuthCredentials: "If 'auth' is provided, it must provide 'auth.username' and 'auth.password' that both must be strings",
	ConflictingVisibility:  "Configuration cannot have 'scope' and 'shared' at the same",
	InvalidCollections:     "If 'collections' is provided, it must be an array of strings",
}

var (
	ErrInvalidLocalhost       = &ConfigurationError{Kind: InvalidLocalhost}
	ErrInvalidDBName          = &ConfigurationError{Kind: InvalidDBName}
	ErrInvalidHost            = &ConfigurationError{Kind: InvalidHost}
	ErrInvalidPort            = &ConfigurationError{Kind: InvalidPort}
	ErrInvalidAuth            = &ConfigurationError{Kind: InvalidAuth}
	ErrInvalidAuthCredentials = &ConfigurationError{Kind: InvalidAuthCredentials}
	ErrConflictingVisibility  = &ConfigurationError{Kind: ConflictingVisibility}
	ErrInvalidCollections     = &ConfigurationError{Kind: InvalidCollections}
)

type (
	// ConfigurationError is returned when the plugin configuration breaks one of the rules.
	// It matches the Err* sentinel of the same kind with errors.Is.
	ConfigurationError struct {
		Kind ErrorKind
	}

	// ConnectionError is reported through the failure continuation when the connection cannot be opened.
	ConnectionError struct {
		// Target is the connection string, with the password redacted.
		Target string
		Err    error
	}
)

func (e *ConfigurationError) Error() string {
	return messagePrefix + messages[e.Kind]
}

func (e *ConfigurationError) Is(target error) bool {
	other, ok := target.(*ConfigurationError)
	return ok && other.Kind == e.Kind
}

// Error is the driver message, untouched.
func (e *ConnectionError) Error() string {
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func fail(kind ErrorKind) error {
	return &ConfigurationError{Kind: kind}
}
