package counter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landmark-crm/landmark/app/models"
)

func TestBuildFlushQuery(t *testing.T) {
	pairs := []pair{
		{subscriptionID: "sub_a", inc: 3},
		{subscriptionID: "sub_b", inc: 2},
	}

	query, args := buildFlushQuery(models.ResourceContacts, pairs)

	// A pair without an existing usage line must insert a fresh row
	// instead of discarding the drained delta.
	assert.True(t, strings.HasPrefix(query, "INSERT INTO subscription_items"), query)
	assert.Contains(t, query, "ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)")

	require.Len(t, args, 6)
	assert.Equal(t, []interface{}{
		"sub_a", models.ResourceContacts, int64(3),
		"sub_b", models.ResourceContacts, int64(2),
	}, args)
	assert.Equal(t, len(args), strings.Count(query, "?"))
}

func TestBuildFlushQuerySingleRow(t *testing.T) {
	query, args := buildFlushQuery(models.ResourceEmails, []pair{{subscriptionID: "sub_1", inc: 10}})

	require.Len(t, args, 3)
	assert.Equal(t, 1, strings.Count(query, "(?, ?, ?, 0, NOW(), NOW())"))
	assert.Equal(t, "sub_1", args[0])
	assert.Equal(t, models.ResourceEmails, args[1])
	assert.Equal(t, int64(10), args[2])
}
