package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/rider-docs-api/databases"
	"github.com/linesmerrill/rider-docs-api/databases/mocks"
	"github.com/linesmerrill/rider-docs-api/models"
)

func TestRiderDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelperErr := &mocks.SingleResultHelper{}
	srHelperCorrect := &mocks.SingleResultHelper{}

	srHelperErr.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	srHelperCorrect.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Rider)
		(*arg).ID = "rider-1"
		(*arg).FullName = "Asha Rao"
	})

	collectionHelper.On("FindOne", context.Background(), bson.M{"_id": "missing"}).Return(srHelperErr)
	collectionHelper.On("FindOne", context.Background(), bson.M{"_id": "rider-1"}).Return(srHelperCorrect)
	dbHelper.On("Collection", "riders").Return(collectionHelper)

	riderDba := databases.NewRiderDatabase(dbHelper)

	rider, err := riderDba.FindOne(context.Background(), bson.M{"_id": "missing"})
	assert.Nil(t, rider)
	assert.EqualError(t, err, "mocked-error")

	rider, err = riderDba.FindOne(context.Background(), bson.M{"_id": "rider-1"})
	assert.NoError(t, err)
	assert.Equal(t, "Asha Rao", rider.FullName)
}

func TestVerifierDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Verifier)
		(*arg).Email = "pump7@example.com"
		(*arg).Role = "fuel-station"
	})
	collectionHelper.On("FindOne", context.Background(), bson.M{"email": "pump7@example.com"}).Return(srHelper)
	dbHelper.On("Collection", "verifiers").Return(collectionHelper)

	verifier, err := databases.NewVerifierDatabase(dbHelper).FindOne(context.Background(), bson.M{"email": "pump7@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, "fuel-station", verifier.Role)
}
