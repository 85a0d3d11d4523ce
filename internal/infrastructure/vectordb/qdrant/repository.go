// Package qdrant provides a VectorDB implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"time"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
)

// Repository implements the VectorDB interface using Qdrant.
type Repository struct {
	collections pb.CollectionsClient
	points      pb.PointsClient
	collection  string
	conn        *grpc.ClientConn
}

// NewRepository creates a new Qdrant note index.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		collections: pb.NewCollectionsClient(conn),
		points:      pb.NewPointsClient(conn),
		collection:  cfg.Collection,
		conn:        conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// IndexNote stores a note with its embedding, replacing any prior version.
func (r *Repository) IndexNote(ctx context.Context, note entities.Note, embedding []float32) error {
	point := &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{Uuid: note.ID},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{Data: embedding},
			},
		},
		Payload: map[string]*pb.Value{
			"title":      {Kind: &pb.Value_StringValue{StringValue: note.Title}},
			"content":    {Kind: &pb.Value_StringValue{StringValue: note.Content}},
			"created_at": {Kind: &pb.Value_StringValue{StringValue: note.CreatedAt.Format(time.RFC3339)}},
			"updated_at": {Kind: &pb.Value_StringValue{StringValue: note.UpdatedAt.Format(time.RFC3339)}},
		},
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         []*pb.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upserting note point: %w", err)
	}

	return nil
}

// SearchNotes returns the notes most similar to the embedding.
func (r *Repository) SearchNotes(ctx context.Context, embedding []float32, limit int) ([]entities.Note, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching note points: %w", err)
	}

	notes := make([]entities.Note, 0, len(resp.Result))
	for _, point := range resp.Result {
		notes = append(notes, scoredPointToNote(point))
	}

	return notes, nil
}

// DeleteNote removes a note from the index.
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{
					Ids: []*pb.PointId{
						{PointIdOptions: &pb.PointId_Uuid{Uuid: id}},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting note point: %w", err)
	}

	return nil
}

// scoredPointToNote converts a Qdrant search result to a Note entity.
func scoredPointToNote(point *pb.ScoredPoint) entities.Note {
	note := entities.Note{
		ID:      point.Id.GetUuid(),
		Title:   getStringValue(point.Payload, "title"),
		Content: getStringValue(point.Payload, "content"),
	}
	if t, err := time.Parse(time.RFC3339, getStringValue(point.Payload, "created_at")); err == nil {
		note.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, getStringValue(point.Payload, "updated_at")); err == nil {
		note.UpdatedAt = t
	}
	return note
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
