package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DETECTOR_BACKEND", "")
	t.Setenv("CLASSIFIER_FILE", "")
	t.Setenv("FACEDUKER_WIDTH", "")
	t.Setenv("QUEUE_BACKEND", "")
	t.Setenv("WORKER_CONCURRENCY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DetectorPigo, cfg.DetectorBackend)
	require.Equal(t, "data/facefinder", cfg.ClassifierFile)
	require.Equal(t, 200, cfg.ResizedWidth)
	require.Equal(t, QueueMemory, cfg.QueueBackend)
	require.Equal(t, 5, cfg.WorkerConcurrency)
	require.Equal(t, int64(10*1024*1024), cfg.WSMessageLimit)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DETECTOR_BACKEND", DetectorOpenCV)
	t.Setenv("CLASSIFIER_FILE", "")
	t.Setenv("FACEDUKER_WIDTH", "320")
	t.Setenv("WORKER_CONCURRENCY", "2")
	t.Setenv("QUEUE_BACKEND", QueueNATS)
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "data/haarcascade_frontalface_default.xml", cfg.ClassifierFile)
	require.Equal(t, 320, cfg.ResizedWidth)
	require.Equal(t, 2, cfg.WorkerConcurrency)
	require.Equal(t, QueueNATS, cfg.QueueBackend)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DETECTOR_BACKEND", "")
	t.Setenv("CLASSIFIER_FILE", "")
	t.Setenv("QUEUE_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WORKER_CONCURRENCY", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("DETECTOR_BACKEND", "magic")
	t.Setenv("CLASSIFIER_FILE", "")
	t.Setenv("QUEUE_BACKEND", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WORKER_CONCURRENCY", "")

	_, err := Load()
	require.Error(t, err)
}
