package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

type engine struct {
	name string
	open func(t *testing.T) *model.Config
}

func engines() []engine {
	return []engine{
		{"file-json", func(t *testing.T) *model.Config {
			return &model.Config{StorageType: "file", FilePath: filepath.Join(t.TempDir(), "file.json")}
		}},
		{"file-yaml", func(t *testing.T) *model.Config {
			return &model.Config{StorageType: "file", FilePath: filepath.Join(t.TempDir(), "file.yaml")}
		}},
		{"sqlite", func(t *testing.T) *model.Config {
			return &model.Config{StorageType: "sqlite", DatabaseDir: t.TempDir(), DatabaseFile: "hbnb.db"}
		}},
		{"badger", func(t *testing.T) *model.Config {
			return &model.Config{StorageType: "badger", BadgerDir: filepath.Join(t.TempDir(), "badger")}
		}},
	}
}

func newTestStore(t *testing.T, cfg *model.Config) *RecordStore {
	t.Helper()
	store, err := NewStorage(cfg, nil)
	require.NoError(t, err)
	return store
}

func TestEngineRoundTrip(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.name, func(t *testing.T) {
			cfg := e.open(t)
			store := newTestStore(t, cfg)
			assert.Empty(t, store.All())

			user := model.NewRecord(model.ClassUser)
			user.Set("name", "John")
			user.Set("age", 30)
			user.Set("score", 30.0)
			user.Set("admin", true)
			city := model.NewRecord(model.ClassCity)
			city.CreatedAt = strfmt.DateTime(time.Time(user.CreatedAt).Add(time.Second))
			city.Set("name", "Lagos")

			require.NoError(t, store.New(user))
			require.NoError(t, store.New(city))
			require.NoError(t, store.Save())
			require.NoError(t, store.Close())

			reopened := newTestStore(t, cfg)
			defer reopened.Close()

			all := reopened.All()
			require.Len(t, all, 2)
			assert.Equal(t, user.Key(), all[0].Key())
			assert.Equal(t, city.Key(), all[1].Key())

			got, ok := reopened.Get(user.Key())
			require.True(t, ok)
			assert.Equal(t, user.String(), got.String())
			assert.Equal(t, 30, got.Attributes["age"])
			assert.Equal(t, 30.0, got.Attributes["score"])
			assert.Equal(t, true, got.Attributes["admin"])
		})
	}
}

func TestEngineDeletePersists(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.name, func(t *testing.T) {
			cfg := e.open(t)
			store := newTestStore(t, cfg)

			a := model.NewRecord(model.ClassPlace)
			b := model.NewRecord(model.ClassPlace)
			require.NoError(t, store.New(a))
			require.NoError(t, store.New(b))
			require.NoError(t, store.Save())

			assert.True(t, store.Delete(a.Key()))
			assert.False(t, store.Delete(a.Key()))
			require.NoError(t, store.Save())
			require.NoError(t, store.Close())

			reopened := newTestStore(t, cfg)
			defer reopened.Close()
			all := reopened.All()
			require.Len(t, all, 1)
			assert.Equal(t, b.Key(), all[0].Key())
		})
	}
}

func TestNewRejectsUnknownClass(t *testing.T) {
	store := newTestStore(t, engines()[0].open(t))

	err := store.New(&model.Record{Class: "MyModel", ID: "1"})
	assert.True(t, IsInvalidRecord(err))
	err = store.New(&model.Record{Class: model.ClassUser})
	assert.True(t, IsInvalidRecord(err))
	assert.Empty(t, store.All())
}

func TestGetReturnsCopy(t *testing.T) {
	store := newTestStore(t, engines()[0].open(t))
	rec := model.NewRecord(model.ClassState)
	require.NoError(t, store.New(rec))

	got, ok := store.Get(rec.Key())
	require.True(t, ok)
	got.Set("name", "changed")

	again, _ := store.Get(rec.Key())
	_, has := again.Get("name")
	assert.False(t, has)
}

func TestUpdate(t *testing.T) {
	cfg := engines()[0].open(t)
	store := newTestStore(t, cfg)
	rec := model.NewRecord(model.ClassAmenity)
	require.NoError(t, store.New(rec))

	t.Run("not found", func(t *testing.T) {
		err := store.Update("Amenity.missing", func(*model.Record) (bool, error) { return true, nil })
		assert.True(t, IsNotFound(err))
	})

	t.Run("failure leaves record unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Update(rec.Key(), func(r *model.Record) (bool, error) {
			r.Set("name", "Wifi")
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
		got, _ := store.Get(rec.Key())
		_, has := got.Get("name")
		assert.False(t, has)
	})

	t.Run("change is persisted", func(t *testing.T) {
		err := store.Update(rec.Key(), func(r *model.Record) (bool, error) {
			r.Set("name", "Wifi")
			return true, nil
		})
		require.NoError(t, err)

		reopened := newTestStore(t, cfg)
		got, ok := reopened.Get(rec.Key())
		require.True(t, ok)
		assert.Equal(t, "Wifi", got.Attributes["name"])
	})
}

// stubBackend keeps entries in memory and fails persist while failing is set
type stubBackend struct {
	failing bool
	saved   int
}

func (b *stubBackend) load(context.Context) ([]entry, error) { return nil, nil }

func (b *stubBackend) persist(_ context.Context, records []*model.Record) error {
	if b.failing {
		return errors.New("disk full")
	}
	b.saved = len(records)
	return nil
}

func (b *stubBackend) close() error { return nil }

func TestDestroy(t *testing.T) {
	b := &stubBackend{}
	store := newRecordStore(DriverFile, b, nil)
	var keys []string
	for i := 0; i < 3; i++ {
		rec := model.NewRecord(model.ClassReview)
		require.NoError(t, store.New(rec))
		keys = append(keys, rec.Key())
	}

	t.Run("not found", func(t *testing.T) {
		assert.True(t, IsNotFound(store.Destroy("Review.missing")))
	})

	t.Run("failed save restores position", func(t *testing.T) {
		b.failing = true
		err := store.Destroy(keys[1])
		assert.ErrorContains(t, err, "disk full")

		var got []string
		for _, rec := range store.All() {
			got = append(got, rec.Key())
		}
		assert.Equal(t, keys, got)
	})

	t.Run("removes and persists", func(t *testing.T) {
		b.failing = false
		require.NoError(t, store.Destroy(keys[1]))
		_, ok := store.Get(keys[1])
		assert.False(t, ok)
		assert.Equal(t, 2, b.saved)
	})
}

func TestReloadSkipsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	content := `{
		"User.1": {"__class__": "User", "id": "1", "created_at": "2024-01-02T03:04:05.000000", "updated_at": "2024-01-02T03:04:05.000000", "first_name": "Betty"},
		"MyModel.2": {"__class__": "MyModel", "id": "2", "created_at": "2024-01-02T03:04:05.000000", "updated_at": "2024-01-02T03:04:05.000000"},
		"City.3": {"__class__": "City", "id": "4", "created_at": "2024-01-02T03:04:05.000000", "updated_at": "2024-01-02T03:04:05.000000"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := newTestStore(t, &model.Config{StorageType: "file", FilePath: path})
	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "User.1", all[0].Key())
	assert.Equal(t, "Betty", all[0].Attributes["first_name"])
}

func TestReloadOrdersByCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	content := `{
		"User.b": {"__class__": "User", "id": "b", "created_at": "2024-01-02T03:04:06.000000", "updated_at": "2024-01-02T03:04:06.000000"},
		"User.a": {"__class__": "User", "id": "a", "created_at": "2024-01-02T03:04:07.000000", "updated_at": "2024-01-02T03:04:07.000000"},
		"City.c": {"__class__": "City", "id": "c", "created_at": "2024-01-02T03:04:05.000000", "updated_at": "2024-01-02T03:04:05.000000"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := newTestStore(t, &model.Config{StorageType: "file", FilePath: path})
	var keys []string
	for _, r := range store.All() {
		keys = append(keys, r.Key())
	}
	assert.Equal(t, []string{"City.c", "User.b", "User.a"}, keys)
}

func TestReloadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewStorage(&model.Config{StorageType: "file", FilePath: path}, nil)
	assert.Error(t, err)
}

func TestFileExportWritesKeyedObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.json")
	rec := model.NewRecord(model.ClassReview)
	rec.Set("text", "great")

	require.NoError(t, FileExport([]*model.Record{rec}, path, FormatJSON))

	objects, err := FileImport(path, FormatJSON)
	require.NoError(t, err)
	require.Contains(t, objects, rec.Key())
	assert.Equal(t, "Review", objects[rec.Key()]["__class__"])
	assert.Equal(t, "great", objects[rec.Key()]["text"])
}

func TestFileImportMissingFile(t *testing.T) {
	objects, err := FileImport(filepath.Join(t.TempDir(), "none.json"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("a/b.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("store.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("file.json"))
	assert.Equal(t, FormatJSON, FormatForPath("file"))
}

func TestNewStorageRejectsUnknownDriver(t *testing.T) {
	_, err := NewStorage(&model.Config{StorageType: "mongo"}, nil)
	assert.Error(t, err)
}

func TestInMemoryBadger(t *testing.T) {
	b, err := OpenBadgerBackend("", true)
	require.NoError(t, err)
	store := newRecordStore(DriverBadger, b, nil)
	defer store.Close()

	rec := model.NewRecord(model.ClassBaseModel)
	require.NoError(t, store.New(rec))
	require.NoError(t, store.Save())
	require.NoError(t, store.Reload())
	assert.Len(t, store.All(), 1)
	assert.Equal(t, DriverBadger, store.Driver())
}
