package db

import (
	"context"
	"fmt"

	"stream-search/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and the episodes collection.
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewClient creates a new database client.
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB.
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveEpisode upserts an episode keyed by its date.
func (c *Client) SaveEpisode(ctx context.Context, episode *domain.Episode) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	filter := bson.M{"date": episode.Date}
	update := bson.M{"$set": episode}
	opts := options.Update().SetUpsert(true)

	_, err := c.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetEpisode loads one episode by date.
func (c *Client) GetEpisode(ctx context.Context, date string) (*domain.Episode, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	var episode domain.Episode
	err := c.collection.FindOne(ctx, bson.M{"date": date}).Decode(&episode)
	if err != nil {
		return nil, fmt.Errorf("failed to load episode %s: %w", date, err)
	}
	return &episode, nil
}

// ListEpisodeDates fetches all stored episode dates.
func (c *Client) ListEpisodeDates(ctx context.Context) ([]string, error) {
	if c.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	cursor, err := c.collection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"date": 1, "_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to query episode dates: %w", err)
	}
	defer cursor.Close(ctx)

	var dates []string
	for cursor.Next(ctx) {
		var result struct {
			Date string `bson:"date"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue // Skip invalid documents
		}
		if result.Date != "" {
			dates = append(dates, result.Date)
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return dates, nil
}
