package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type (
	// Driver opens client connections.
	//
	// Connect returns immediately, the outcome is reported once through done, from any goroutine.
	Driver interface {
		Connect(ctx context.Context, uri string, done func(client *mongo.Client, err error))
	}

	DriverFunc func(ctx context.Context, uri string, done func(client *mongo.Client, err error))

	// Connection is the service registered as ServiceName.
	Connection struct {
		Client   *mongo.Client
		Database *mongo.Database
	}

	mongoDriver struct {
		options []*options.ClientOptions
	}
)

func (f DriverFunc) Connect(ctx context.Context, uri string, done func(client *mongo.Client, err error)) {
	f(ctx, uri, done)
}

// NewDriver returns the driver backed by the official client.
// A connection is reported only once the primary answered a ping.
//
// The given options are applied after the URI, they can override what it sets.
func NewDriver(opts ...*options.ClientOptions) Driver {
	return &mongoDriver{options: opts}
}

func (d *mongoDriver) Connect(ctx context.Context, uri string, done func(client *mongo.Client, err error)) {
	go func() {
		opts := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, d.options...)
		client, err := mongo.Connect(ctx, opts...)
		if err != nil {
			done(nil, err)
			return
		}

		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			done(nil, err)
			return
		}

		done(client, nil)
	}()
}

// Collection returns the handle of the named collection of the configured database.
func (c *Connection) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

// Close disconnects the client, it is called when the compiler is closed.
func (c *Connection) Close() error {
	return c.Client.Disconnect(context.Background())
}
