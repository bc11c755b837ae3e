// Package mongodb is a compiler plugin registering a MongoDB connection service and one accessor
// service per configured collection.
//
// The plugin reads its configuration under "plugins.mongoDb" in the host configuration tree:
//
//	plugins:
//	  mongoDb:
//	    dbName: blog
//	    host: db.example.com
//	    port: 27017
//	    auth:
//	      username: blog
//	      password: s3cr3t
//	    collections: [pages, codeProjects]
//	    scope: public
package mongodb

import "github.com/a-peyrard/godi-mongo/str"

const (
	// PluginKey is the key of the plugin configuration under "plugins".
	PluginKey  = "mongoDb"
	ConfigPath = "plugins." + PluginKey

	// ServiceName is the name of the connection service, collection services depend on it.
	ServiceName      = "MongoService"
	CollectionSuffix = "Collection"
	CollectionScope  = "public"

	LocalURI    = "mongodb://localhost:27017"
	DefaultHost = "localhost"
	DefaultPort = 27017
	// DefaultDatabase is used in localhost mode when no database name is configured.
	DefaultDatabase = "test"
)

type (
	// Config is the validated plugin configuration, see Resolve.
	Config struct {
		// Localhost connects to LocalURI, ignoring host, port and auth.
		Localhost bool
		DBName    string
		Host      *string
		Port      *int
		Auth      *Auth
		// Collections is nil when not configured.
		Collections []string
		// Scope and Shared are copied to the connection service visibility, empty or nil when not set.
		Scope  string
		Shared any
	}

	Auth struct {
		Username string
		Password string
	}
)

// Validate checks the rules that still apply to a typed configuration, for configurations built
// in code rather than resolved from a tree.
func (c Config) Validate() error {
	if !c.Localhost {
		if c.DBName == "" {
			return fail(InvalidDBName)
		}
		if c.Auth == nil {
			return fail(InvalidAuthCredentials)
		}
	}
	if c.Scope != "" && c.Shared != nil {
		return fail(ConflictingVisibility)
	}
	return nil
}

// Database returns the name of the database handed to dependents of the connection service.
func (c Config) Database() string {
	if c.DBName == "" {
		return DefaultDatabase
	}
	return c.DBName
}

// CollectionServiceName returns the name of the service giving access to collection,
// "codeProjects" is served as "CodeProjectsCollection".
func CollectionServiceName(collection string) string {
	return str.UpperFirst(collection) + CollectionSuffix
}
