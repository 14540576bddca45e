package integration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	miniostorage "github.com/sharoon-shahzad/Frame2Action/internal/infra/minio"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/postgres"
	"github.com/sharoon-shahzad/Frame2Action/internal/infra/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

func TestPredictionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("predictions"),
		tcpostgres.WithUsername("frame2action"),
		tcpostgres.WithPassword("frame2action"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, postgres.RunMigrations(connStr, "../../migrations"))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	repo := postgres.NewPredictionRepository(pool)

	p := entity.NewPrediction("clip.mp4", entity.FormatMP4, 5)
	require.NoError(t, repo.Create(ctx, p))

	p.TotalFrames = 30
	p.Advance(entity.StageInferring)
	p.Complete("Jumping", 0.93)
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "clip.mp4", got.Filename)
	assert.Equal(t, entity.FormatMP4, got.Format)
	assert.Equal(t, entity.StageCompleted, got.Stage)
	assert.Equal(t, "Jumping", got.Action)
	assert.Equal(t, "A person is Jumping", got.Caption)
	assert.Equal(t, 0.93, got.Confidence)
	assert.Equal(t, 30, got.TotalFrames)
	require.NotNil(t, got.CompletedAt)

	failed := entity.NewPrediction("bad.avi", entity.FormatAVI, 5)
	require.NoError(t, repo.Create(ctx, failed))
	failed.Fail("video decode failed")
	require.NoError(t, repo.Update(ctx, failed))

	recent, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestVideoArchive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	minioContainer, err := tcminio.Run(ctx,
		"minio/minio:latest",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	defer minioContainer.Terminate(ctx)

	endpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := miniostorage.NewStorage(miniostorage.StorageConfig{
		Endpoint:      endpoint,
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		UseSSL:        false,
		ArchiveBucket: "video-archive",
	})
	require.NoError(t, err)
	require.NoError(t, storage.EnsureBucket(ctx))

	videoPath := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(videoPath, []byte("fake video bytes"), 0644))

	key := "test-prediction/clip.mp4"
	require.NoError(t, storage.ArchiveVideo(ctx, key, videoPath))

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)

	stat, err := client.StatObject(ctx, "video-archive", key, miniogo.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(len("fake video bytes")), stat.Size)
}

func TestPredictionPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	rmqContainer, err := tcrabbitmq.Run(ctx,
		"rabbitmq:3.12-management-alpine",
	)
	require.NoError(t, err)
	defer rmqContainer.Terminate(ctx)

	rmqURL, err := rmqContainer.AmqpURL(ctx)
	require.NoError(t, err)

	conn, err := amqp.Dial(rmqURL)
	require.NoError(t, err)
	defer conn.Close()

	pub, err := rabbitmq.NewPublisher(conn, "frame2action")
	require.NoError(t, err)
	defer pub.Close()

	eventPub := rabbitmq.NewPredictionPublisher(pub, "prediction.events")

	// Bind a queue before publishing so the event is captured.
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "prediction.events", "frame2action", false, nil))

	p := entity.NewPrediction("clip.mp4", entity.FormatMP4, 5)
	p.Complete("Handclapping", 0.66)
	body, err := json.Marshal(p.Event())
	require.NoError(t, err)
	require.NoError(t, eventPub.PublishPrediction(ctx, body))

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-msgs:
		var ev entity.PredictionEvent
		require.NoError(t, json.Unmarshal(d.Body, &ev))
		assert.Equal(t, p.ID, ev.PredictionID)
		assert.Equal(t, entity.StageCompleted, ev.Stage)
		assert.Equal(t, "Handclapping", ev.Action)
	case <-time.After(30 * time.Second):
		t.Fatal("timeout waiting for prediction event")
	}
}
