package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mood-tagger/models"
)

type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoClient(uri string) (*MongoClient, error) {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %s", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %s", err)
	}

	return &MongoClient{
		client: client,
		db:     client.Database("mood-tagger"),
	}, nil
}

func (m *MongoClient) Close() error {
	return m.client.Disconnect(context.Background())
}

func (m *MongoClient) collection() *mongo.Collection {
	return m.db.Collection("moodTags")
}

// StoreMoodTags upserts the whole ratings document for the file.
func (m *MongoClient) StoreMoodTags(ctx context.Context, tags *models.MoodTags) error {
	filter := bson.M{"fileKey": tags.FileKey}
	update := bson.M{"$set": bson.M{
		"fileKey":    tags.FileKey,
		"ratings":    tags.Ratings,
		"analyzedAt": tags.AnalyzedAt,
		"model":      tags.Model,
	}}

	_, err := m.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error storing mood tags: %s", err)
	}
	return nil
}

func (m *MongoClient) GetMoodTags(ctx context.Context, fileKey string) (*models.MoodTags, bool, error) {
	var tags models.MoodTags
	err := m.collection().FindOne(ctx, bson.M{"fileKey": fileKey}).Decode(&tags)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error retrieving mood tags: %s", err)
	}
	return &tags, true, nil
}

func (m *MongoClient) DeleteMoodTags(ctx context.Context, fileKey string) error {
	_, err := m.collection().DeleteOne(ctx, bson.M{"fileKey": fileKey})
	if err != nil {
		return fmt.Errorf("error deleting mood tags: %s", err)
	}
	return nil
}

func (m *MongoClient) ListFileKeys(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"fileKey": 1}).
		SetSort(bson.M{"analyzedAt": -1})

	cursor, err := m.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing file keys: %s", err)
	}
	defer cursor.Close(ctx)

	var keys []string
	for cursor.Next(ctx) {
		var doc struct {
			FileKey string `bson:"fileKey"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding file key: %s", err)
		}
		keys = append(keys, doc.FileKey)
	}
	return keys, cursor.Err()
}

func (m *MongoClient) TotalTagged(ctx context.Context) (int, error) {
	count, err := m.collection().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting tagged files: %s", err)
	}
	return int(count), nil
}
