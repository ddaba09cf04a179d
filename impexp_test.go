package balance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSV(t *testing.T) {
	csv := strings.Join([]string{
		"id,accountId,categoryId,amount,transactionDate,comment,createdAt,updatedAt",
		`1,100,200,100.50,2025-06-14T12:00:00.000Z,"lunch",2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z`,
		"2,100,201,50.00,2025-06-15T08:30:00.000Z,,2025-06-15T08:30:00.000Z,2025-06-15T08:30:00.000Z",
	}, "\n")

	txs, skipped := ImportCSV(csv)
	require.Empty(t, skipped)
	require.Len(t, txs, 2)

	first := txs[0]
	assert.Equal(t, 1, first.ID)
	assert.True(t, first.Amount.Equal(dec("100.50")))
	require.NotNil(t, first.Comment)
	assert.Equal(t, "lunch", *first.Comment, "quote characters are stripped, not escaped")

	// the row carries only foreign keys, so snapshots are placeholders
	assert.Equal(t, 100, first.Account.ID)
	assert.Equal(t, "N/A", first.Account.Name)
	assert.Equal(t, RUB, first.Account.Currency)
	assert.Equal(t, 200, first.Category.ID)
	assert.Equal(t, "N/A", first.Category.Name)
	assert.Equal(t, "❔", first.Category.Emoji)

	assert.Nil(t, txs[1].Comment, "empty comment column decodes as absent, not empty string")
}

func TestImportCSV_BadRowsAreDroppedAndReported(t *testing.T) {
	csv := strings.Join([]string{
		"1,100,200,100.50,2025-06-14T12:00:00.000Z,ok,2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z",
		"2,100,200,50.00,2025-06-14T12:00:00.000Z,short row,2025-06-14T12:00:00.000Z", // 7 columns
		"x,100,200,1.00,2025-06-14T12:00:00.000Z,bad id,2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z",
		"3,100,200,nope,2025-06-14T12:00:00.000Z,bad amount,2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z",
	}, "\n")

	txs, skipped := ImportCSV(csv)
	require.Len(t, txs, 1)
	assert.Equal(t, 1, txs[0].ID)

	require.Len(t, skipped, 3)
	assert.Equal(t, 2, skipped[0].Line)
	assert.Contains(t, skipped[0].Err.Error(), "expected 8 columns")
	assert.Equal(t, 3, skipped[1].Line)
	assert.Equal(t, 4, skipped[2].Line)
}

func TestImportCSV_HeaderSniffing(t *testing.T) {
	row := "1,100,200,100.50,2025-06-14T12:00:00.000Z,,2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z"

	// a first row starting with the column names is a header
	txs, skipped := ImportCSV("id,accountId,categoryId,amount,transactionDate,comment,createdAt,updatedAt\n" + row)
	require.Empty(t, skipped)
	assert.Len(t, txs, 1)

	// a first data row is not mistaken for one
	txs, skipped = ImportCSV(row)
	require.Empty(t, skipped)
	assert.Len(t, txs, 1)

	// a header-looking row past the first line is a (rejected) data row
	txs, skipped = ImportCSV(row + "\nid,accountId,categoryId,amount,transactionDate,comment,createdAt,updatedAt")
	assert.Len(t, txs, 1)
	assert.Len(t, skipped, 1)
}

func TestImportCSV_BlankLinesAndCRLF(t *testing.T) {
	csv := "id,accountId,categoryId,amount,transactionDate,comment,createdAt,updatedAt\r\n" +
		"1,100,200,100.50,2025-06-14T12:00:00.000Z,,2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z\r\n" +
		"\r\n"
	txs, skipped := ImportCSV(csv)
	require.Empty(t, skipped)
	assert.Len(t, txs, 1)
}

func TestExportCSVRoundTrip(t *testing.T) {
	orig, skipped := ImportCSV(strings.Join([]string{
		"1,100,200,100.50,2025-06-14T12:00:00.000Z,lunch,2025-06-14T12:00:00.000Z,2025-06-14T12:00:00.000Z",
		"2,100,201,50.00,2025-06-15T08:30:00.000Z,,2025-06-15T08:30:00.000Z,2025-06-15T08:30:00.000Z",
	}, "\n"))
	require.Empty(t, skipped)
	require.Len(t, orig, 2)

	var buf strings.Builder
	require.NoError(t, ExportCSV(&buf, orig))
	assert.True(t, strings.HasPrefix(buf.String(), "id,accountId,categoryId,amount,"), "export starts with the header row")

	back, skipped := ImportCSV(buf.String())
	require.Empty(t, skipped)
	require.Len(t, back, 2)
	for i := range orig {
		assert.True(t, back[i].Equal(orig[i]), "transaction %d changed in the round trip", orig[i].ID)
	}
}

func TestExportCSV_CommentSanitized(t *testing.T) {
	tx := testTransaction(1, "10.00")
	tx.Comment = strptr(`coffee, "large"`)

	var buf strings.Builder
	require.NoError(t, ExportCSV(&buf, []Transaction{tx}))

	back, skipped := ImportCSV(buf.String())
	require.Empty(t, skipped)
	require.Len(t, back, 1)
	require.NotNil(t, back[0].Comment)
	assert.Equal(t, "coffee  large", *back[0].Comment)
}
