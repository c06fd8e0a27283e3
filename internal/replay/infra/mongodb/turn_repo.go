package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"HaliteBot/internal/replay"
)

const defaultCollectionName = "turns"

type moveDoc struct {
	X         int    `bson:"x"`
	Y         int    `bson:"y"`
	Direction int    `bson:"d"`
	Reason    string `bson:"reason"`
}

type turnDoc struct {
	Session        string    `bson:"session"`
	Turn           int       `bson:"turn"`
	Self           int       `bson:"self"`
	Attacking      bool      `bson:"attacking"`
	Engaged        bool      `bson:"engaged"`
	Ended          bool      `bson:"ended"`
	Enemy          int       `bson:"enemy"`
	EnemyTerritory int       `bson:"enemy_territory"`
	MyCount        int       `bson:"my_count"`
	Width          int       `bson:"width"`
	Height         int       `bson:"height"`
	Labels         []int     `bson:"labels"`
	Moves          []moveDoc `bson:"moves"`
	RecordedAt     time.Time `bson:"recorded_at"`
}

type TurnRepository struct {
	coll *mongo.Collection
}

var _ replay.Repository = (*TurnRepository)(nil)

func NewTurnRepository(db *mongo.Database) *TurnRepository {
	return &TurnRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

// EnsureIndexes 建立 (session, turn) 索引。
func (r *TurnRepository) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb turns collection is nil")
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session", Value: 1}, {Key: "turn", Value: 1}},
	})
	return err
}

func (r *TurnRepository) Save(ctx context.Context, rec replay.TurnRecord) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb turns collection is nil")
	}
	_, err := r.coll.InsertOne(ctx, toDoc(rec))
	return err
}

func (r *TurnRepository) ListBySession(ctx context.Context, session string, limit int) ([]replay.TurnRecord, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb turns collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "turn", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.M{"session": session}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []turnDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]replay.TurnRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDoc(d))
	}
	return out, nil
}

func toDoc(rec replay.TurnRecord) turnDoc {
	moves := make([]moveDoc, 0, len(rec.Moves))
	for _, m := range rec.Moves {
		moves = append(moves, moveDoc{X: m.X, Y: m.Y, Direction: m.Direction, Reason: m.Reason})
	}
	return turnDoc{
		Session:        rec.Session,
		Turn:           rec.Turn,
		Self:           rec.Self,
		Attacking:      rec.Attacking,
		Engaged:        rec.Engaged,
		Ended:          rec.Ended,
		Enemy:          rec.Enemy,
		EnemyTerritory: rec.EnemyTerritory,
		MyCount:        rec.MyCount,
		Width:          rec.Width,
		Height:         rec.Height,
		Labels:         rec.Labels,
		Moves:          moves,
		RecordedAt:     rec.RecordedAt,
	}
}

func fromDoc(d turnDoc) replay.TurnRecord {
	moves := make([]replay.Move, 0, len(d.Moves))
	for _, m := range d.Moves {
		moves = append(moves, replay.Move{X: m.X, Y: m.Y, Direction: m.Direction, Reason: m.Reason})
	}
	return replay.TurnRecord{
		Session:        d.Session,
		Turn:           d.Turn,
		Self:           d.Self,
		Attacking:      d.Attacking,
		Engaged:        d.Engaged,
		Ended:          d.Ended,
		Enemy:          d.Enemy,
		EnemyTerritory: d.EnemyTerritory,
		MyCount:        d.MyCount,
		Width:          d.Width,
		Height:         d.Height,
		Labels:         d.Labels,
		Moves:          moves,
		RecordedAt:     d.RecordedAt,
	}
}
