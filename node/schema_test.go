package node

import "testing"

func TestLookupOperation(t *testing.T) {
	r, op, err := LookupOperation("pdf", "merge")
	if err != nil {
		t.Fatalf("LookupOperation error: %v", err)
	}
	if r.Name != "pdf" || op.Name != "merge" {
		t.Fatalf("got %s/%s", r.Name, op.Name)
	}

	if _, _, err := LookupOperation("pdf", "shrink"); err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if _, _, err := LookupOperation("video", "merge"); err == nil {
		t.Fatal("expected error for unknown resource")
	}
}

func TestSchemaFieldSets(t *testing.T) {
	for _, r := range Schema() {
		if len(r.Operations) == 0 {
			t.Errorf("resource %s has no operations", r.Name)
		}
		for _, op := range r.Operations {
			seen := map[string]bool{}
			for _, f := range op.Fields {
				if f.Name == "" {
					t.Errorf("%s/%s has unnamed field", r.Name, op.Name)
				}
				if seen[f.Name] {
					t.Errorf("%s/%s field %q duplicated", r.Name, op.Name, f.Name)
				}
				seen[f.Name] = true
				if f.Type == FieldOptions && len(f.Options) == 0 {
					t.Errorf("%s/%s options field %q has no options", r.Name, op.Name, f.Name)
				}
			}
			if r.Multipart && !seen["binaryProperties"] {
				t.Errorf("%s/%s missing binaryProperties field", r.Name, op.Name)
			}
			if !seen["download"] {
				t.Errorf("%s/%s missing download field", r.Name, op.Name)
			}
		}
	}
}

// Every schema operation must be accepted by the dispatcher.
func TestSchemaMatchesDispatcher(t *testing.T) {
	defaults := Parameters{
		"text":     "x",
		"pages":    "1",
		"tasks":    "convert",
		"password": "x",
	}
	for _, r := range Schema() {
		for _, op := range r.Operations {
			switch r.Name {
			case "image":
				if _, err := ImageOperationFrom(op.Name, defaults); err != nil {
					t.Errorf("image/%s rejected by dispatcher: %v", op.Name, err)
				}
			case "pdf":
				if _, err := PDFOperationFrom(op.Name, defaults); err != nil {
					t.Errorf("pdf/%s rejected by dispatcher: %v", op.Name, err)
				}
			}
		}
	}
}
