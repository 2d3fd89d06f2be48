package locations_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locsplit.dev/locsplit/storage/locations"
	"locsplit.dev/locsplit/storage/objstore"
)

func TestNewLocation_S3Path(t *testing.T) {
	store, err := locations.New("s3://my-bucket/some/path")
	assert.NoError(t, err, "creating store with S3 path should not error")

	_, ok := store.(*locations.S3Location)
	assert.True(t, ok, "store should be an S3Location for s3:// paths")
}

func TestNewLocation_LocalPath(t *testing.T) {
	store, err := locations.New("/local/path")
	assert.NoError(t, err, "creating store with local path should not error")

	_, ok := store.(*locations.LocalDirectory)
	assert.True(t, ok, "store should be a LocalDirectory for local paths")
}

func TestLocalDirectory(t *testing.T) {
	locationStoreSuite(t, func() locations.StorageLocation {
		return locations.NewLocalDirectory(filepath.Join(t.TempDir(), "output"))
	})
}

func TestS3Location(t *testing.T) {
	locationStoreSuite(t, func() locations.StorageLocation {
		loc, err := locations.NewS3Location(objstore.NewMemoryS3Service(), "s3://bucket/prefix")
		require.NoError(t, err, "creating S3 location should not return an error")
		return loc.WithStagingDir(t.TempDir())
	})
}

func TestS3Location_RequiresBucket(t *testing.T) {
	_, err := locations.NewS3Location(objstore.NewMemoryS3Service(), "s3://")
	assert.Error(t, err)
}

func TestS3Location_UploadsOnClose(t *testing.T) {
	svc := objstore.NewMemoryS3Service()
	staging := t.TempDir()
	loc, err := locations.NewS3Location(svc, "s3://bucket/kml")
	require.NoError(t, err)
	loc.WithStagingDir(staging)

	f, err := loc.Create("2013-04.kml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<kml/>"))
	require.NoError(t, err)
	assert.Empty(t, svc.Keys("bucket"), "nothing is uploaded before close")

	require.NoError(t, f.Close())
	assert.Equal(t, []string{"kml/2013-04.kml"}, svc.Keys("bucket"))
	assert.Equal(t, "s3://bucket/kml/2013-04.kml", f.URI())

	entries, err := os.ReadDir(staging)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged file should be removed after upload")
}

func TestOpenS3File(t *testing.T) {
	svc := objstore.NewMemoryS3Service()
	_, err := svc.PutObject(t.Context(), &s3.PutObjectInput{
		Bucket: aws.String("takeout"),
		Key:    aws.String("exports/Records.json"),
		Body:   bytes.NewReader([]byte(`{"locations":[]}`)),
	})
	require.NoError(t, err)

	r, err := locations.OpenS3File(svc, "s3://takeout/exports/Records.json")
	require.NoError(t, err)
	defer r.Close()
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, `{"locations":[]}`, string(content))

	_, err = locations.OpenS3File(svc, "s3://takeout/missing.json")
	assert.ErrorIs(t, err, locations.ErrNotFound)

	_, err = locations.OpenS3File(svc, "s3://takeout")
	assert.Error(t, err, "a URI without a key is invalid")
}

func locationStoreSuite(t *testing.T, newLoc func() locations.StorageLocation) {
	t.Run("CreateThenOpen", func(t *testing.T) {
		loc := newLoc()

		f, err := loc.Create("2013-04.kml")
		require.NoError(t, err)
		_, err = f.Write([]byte("first "))
		require.NoError(t, err)
		_, err = f.Write([]byte("second"))
		require.NoError(t, err)
		require.NoError(t, f.Close())

		r, err := loc.Open("2013-04.kml")
		require.NoError(t, err)
		defer r.Close()
		content, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "first second", string(content))

		uri, err := loc.URI("2013-04.kml")
		require.NoError(t, err)
		assert.Equal(t, f.URI(), uri, "file URI should match the location URI")
	})

	t.Run("CreateReplaces", func(t *testing.T) {
		loc := newLoc()
		for _, content := range []string{"old content", "new"} {
			f, err := loc.Create("2013.kml")
			require.NoError(t, err)
			_, err = f.Write([]byte(content))
			require.NoError(t, err)
			require.NoError(t, f.Close())
		}

		r, err := loc.Open("2013.kml")
		require.NoError(t, err)
		defer r.Close()
		content, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "new", string(content))
	})

	t.Run("WriteAfterClose", func(t *testing.T) {
		f, err := newLoc().Create("closed.kml")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		_, err = f.Write([]byte("late"))
		assert.ErrorIs(t, err, os.ErrClosed)
		assert.ErrorIs(t, f.Close(), os.ErrClosed, "closing twice should fail")
	})

	t.Run("OpenNonExistent", func(t *testing.T) {
		r, err := newLoc().Open("nonexistent.kml")
		assert.ErrorIs(t, err, locations.ErrNotFound)
		assert.Nil(t, r)
	})

	t.Run("URINonExistent", func(t *testing.T) {
		_, err := newLoc().URI("nonexistent.kml")
		assert.ErrorIs(t, err, locations.ErrNotFound, "error should be ErrNotFound")
	})
}

func TestNewWithS3Service(t *testing.T) {
	svc := objstore.NewMemoryS3Service()

	loc, err := locations.NewWithS3Service("s3://bucket/out", svc)
	require.NoError(t, err)
	assert.IsType(t, &locations.S3Location{}, loc)

	loc, err = locations.NewWithS3Service(t.TempDir(), svc)
	require.NoError(t, err)
	assert.IsType(t, &locations.LocalDirectory{}, loc)
}
