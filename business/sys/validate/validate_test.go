package validate_test

import (
	"testing"

	"github.com/ardanlabs/powchain/business/sys/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type newTx struct {
	Sender   string `json:"sender" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
	Amount   int64  `json:"amount" validate:"gt=0"`
}

func TestCheck(t *testing.T) {
	t.Log("Given the need to validate models against their tags.")
	{
		t.Logf("\tTest 0:\tWhen the model is valid.")
		{
			if err := validate.Check(newTx{Sender: "Alice", Receiver: "Bob", Amount: 1}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould pass validation: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould pass validation.", success)
		}

		t.Logf("\tTest 1:\tWhen the model is missing fields.")
		{
			err := validate.Check(newTx{Sender: "Alice"})
			if !validate.IsFieldErrors(err) {
				t.Fatalf("\t%s\tTest 1:\tShould get field errors, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get field errors.", success)

			fields := validate.GetFieldErrors(err).Fields()
			if _, exists := fields["receiver"]; !exists {
				t.Fatalf("\t%s\tTest 1:\tShould name the receiver field by its json tag, got %v.", failed, fields)
			}
			if _, exists := fields["amount"]; !exists {
				t.Fatalf("\t%s\tTest 1:\tShould name the amount field by its json tag, got %v.", failed, fields)
			}
			if _, exists := fields["sender"]; exists {
				t.Fatalf("\t%s\tTest 1:\tShould not report the sender field.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould name the failed fields by their json tags.", success)
		}
	}
}
