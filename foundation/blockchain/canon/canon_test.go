package canon_test

import (
	"encoding/json"
	"testing"

	"github.com/ardanlabs/powchain/foundation/blockchain/canon"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestQuote(t *testing.T) {
	tt := []struct {
		name string
		in   string
		exp  string
	}{
		{"plain", "Alice", `'Alice'`},
		{"empty", "", `''`},
		{"single", "O'Brien", `"O'Brien"`},
		{"double", `Bob "B"`, `'Bob "B"'`},
		{"both", `a'b"c`, `'a\'b"c'`},
		{"escapes", "tab\there\\", `'tab\there\\'`},
		{"control", "\x01", `'\x01'`},
		{"nbsp", "\u00a0", `'\xa0'`},
		{"unicode", "é", `'é'`},
	}

	t.Log("Given the need to quote strings in canonical form.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				got := canon.Quote(tst.in)
				if got != tst.exp {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
					t.Fatalf("\t%s\tTest %d:\tShould quote the string correctly.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould quote the string correctly.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func TestList(t *testing.T) {
	records := []canon.Record{
		{{Key: "sender", Value: "Alice"}, {Key: "receiver", Value: "Bob"}, {Key: "amount", Value: int64(50)}},
		{{Key: "sender", Value: "Charlie"}, {Key: "receiver", Value: "David"}, {Key: "amount", Value: int64(25)}},
	}

	const exp = `[{'sender': 'Alice', 'receiver': 'Bob', 'amount': 50}, {'sender': 'Charlie', 'receiver': 'David', 'amount': 25}]`

	t.Log("Given the need to render a list of records.")
	{
		t.Logf("\tTest 0:\tWhen handling two transaction records.")
		{
			if got := canon.List(records); got != exp {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, got)
				t.Logf("\t%s\tTest 0:\texp: %s", failed, exp)
				t.Fatalf("\t%s\tTest 0:\tShould render the list in canonical form.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould render the list in canonical form.", success)

			if got := canon.List(nil); got != "[]" {
				t.Fatalf("\t%s\tTest 0:\tShould render an empty list as [], got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould render an empty list as [].", success)
		}
	}
}

func TestRecordJSON(t *testing.T) {
	r := canon.Record{{Key: "sender", Value: "Alice"}, {Key: "receiver", Value: "Bob"}, {Key: "amount", Value: int64(50)}}

	t.Log("Given the need to marshal a record to JSON in field order.")
	{
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to marshal the record: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to marshal the record.", success)

		const exp = `{"sender":"Alice","receiver":"Bob","amount":50}`
		if string(data) != exp {
			t.Logf("\t%s\tgot: %s", failed, data)
			t.Logf("\t%s\texp: %s", failed, exp)
			t.Fatalf("\t%s\tShould keep the field order.", failed)
		}
		t.Logf("\t%s\tShould keep the field order.", success)

		v, ok := r.Get("amount")
		if !ok || v != int64(50) {
			t.Fatalf("\t%s\tShould be able to get a field by key, got %v.", failed, v)
		}
		t.Logf("\t%s\tShould be able to get a field by key.", success)
	}
}
