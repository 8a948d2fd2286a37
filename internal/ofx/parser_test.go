package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfin/tally/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250615120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601120000[0:GMT]
<DTEND>20250630120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250610120000[0:GMT]
<TRNAMT>-25.50
<FITID>2025061001
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250615120000[0:GMT]
<TRNAMT>3000.00
<FITID>2025061501
<NAME>ACME CORP PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250620120000[0:GMT]
<TRNAMT>-125.00
<FITID>2025062001
<NAME>DEBIT
<MEMO>Whole Foods Market
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20250630120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250615120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601120000[0:GMT]
<DTEND>20250630120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250610120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2025061001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250615120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2025061501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20250630120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func testCategories() *model.CategorySet {
	return model.NewCategorySet([]model.Category{
		{ID: "salary", Name: "Salary", Type: model.CategoryTypeIncome},
		{ID: "food", Name: "Food", Type: model.CategoryTypeExpense},
	})
}

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{
			name:          "valid bank statement",
			ofxData:       sampleBankOFX,
			expectedCount: 3,
			expectedError: false,
		},
		{
			name:          "valid credit card statement",
			ofxData:       sampleCreditCardOFX,
			expectedCount: 2,
			expectedError: false,
		},
		{
			name:          "invalid OFX data",
			ofxData:       "not valid OFX",
			expectedCount: 0,
			expectedError: true,
		},
		{
			name:          "empty OFX",
			ofxData:       "",
			expectedCount: 0,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(testCategories())
			reader := strings.NewReader(tt.ofxData)

			transactions, err := parser.ParseFile(context.Background(), reader)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, transactions, tt.expectedCount)
			}
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	parser := NewParser(testCategories())
	reader := strings.NewReader(sampleBankOFX)

	transactions, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	// Negative amount becomes an expense with the sign stripped.
	tx1 := transactions[0]
	assert.NotEmpty(t, tx1.ID)
	assert.Equal(t, model.TypeExpense, tx1.Type)
	assert.Equal(t, "STARBUCKS STORE #1234", tx1.Description)
	assert.Equal(t, model.Money(2550), tx1.Amount)
	assert.Equal(t, "food", tx1.CategoryID)
	// Compare just the date components, ignoring timezone
	assert.Equal(t, 2025, tx1.Date.Year())
	assert.Equal(t, time.June, tx1.Date.Month())
	assert.Equal(t, 10, tx1.Date.Day())

	// Positive amount becomes income in the income namespace.
	tx2 := transactions[1]
	assert.Equal(t, model.TypeIncome, tx2.Type)
	assert.Equal(t, "ACME CORP PAYROLL", tx2.Description)
	assert.Equal(t, model.Money(300000), tx2.Amount)
	assert.Equal(t, "salary", tx2.CategoryID)

	// A generic NAME falls back to the MEMO field.
	tx3 := transactions[2]
	assert.Equal(t, "Whole Foods Market", tx3.Description)
	assert.Equal(t, model.Money(12500), tx3.Amount)
}

func TestParseCreditCardTransactions(t *testing.T) {
	parser := NewParser(testCategories())
	reader := strings.NewReader(sampleCreditCardOFX)

	transactions, err := parser.ParseFile(context.Background(), reader)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	tx1 := transactions[0]
	assert.Equal(t, model.TypeExpense, tx1.Type)
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", tx1.Description)
	assert.Equal(t, model.Money(4599), tx1.Amount)

	tx2 := transactions[1]
	assert.Equal(t, "NETFLIX.COM", tx2.Description)
	assert.Equal(t, model.Money(1500), tx2.Amount)
}

func TestParseFileCanceledContext(t *testing.T) {
	parser := NewParser(testCategories())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsGenericDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "generic debit",
			input:    "DEBIT",
			expected: true,
		},
		{
			name:     "generic pos with whitespace",
			input:    "  pos  ",
			expected: true,
		},
		{
			name:     "empty name",
			input:    "",
			expected: true,
		},
		{
			name:     "real merchant",
			input:    "NETFLIX.COM",
			expected: false,
		},
		{
			name:     "merchant containing generic word",
			input:    "DEBIT CARD PURCHASE STARBUCKS",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isGenericDescription(tt.input))
		})
	}
}

func TestPreprocess(t *testing.T) {
	parser := NewParser(testCategories())

	t.Run("trims leading whitespace", func(t *testing.T) {
		result := parser.preprocess("\n\t OFXHEADER:100")
		assert.Equal(t, "OFXHEADER:100", result)
	})

	t.Run("uppercases severity values", func(t *testing.T) {
		result := parser.preprocess("<SEVERITY>Info</SEVERITY>")
		assert.Equal(t, "<SEVERITY>INFO</SEVERITY>", result)
	})

	t.Run("closes bare SGML tags", func(t *testing.T) {
		result := parser.preprocess("<STMTTRN\n<TRNTYPE>DEBIT")
		assert.Equal(t, "<STMTTRN>\n<TRNTYPE>DEBIT", result)
	})
}
