package conformance_test

import (
	"bytes"
	"strings"
	"testing"

	cyberphone "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// On well-formed input without negative zero, lone surrogates or duplicate
// keys, the canonical text must match the cyberphone RFC 8785 canonicalizer
// byte for byte.
func TestCyberphoneGoDifferentialAgreement(t *testing.T) {
	h := testHarness(t)

	inputs := []string{
		`{"numbers":[333333333.33333329,1E30,4.50,2e-3,0.000000000000000000000000001],"string":"\u20ac$\u000F\u000aA'\u0042\u0022\u005c\\\"\/","literals":[null,true,false]}`,
		`{"\u20ac":"Euro Sign","\r":"Carriage Return","\ufb33":"Hebrew Letter Dalet With Dagesh","1":"One","\ud83d\ude00":"Emoji: Grinning Face","\u0080":"Control","\u00f6":"Latin Small Letter O With Diaeresis"}`,
		`[1e21, 1e20, 1e-6, 1e-7, 0.1, 100, 123456789012345680000, 5e-324, 1.7976931348623157e308]`,
		`{"a":{"c":[{"f":1,"e":2}],"b":[]},"":{}}`,
		`["\u0000\u001f\u007f\ud834\udd1e"]`,
		`[ -1.5e-10 , 9007199254740993 , -123.456 ]`,
	}

	for _, in := range inputs {
		want, err := cyberphone.Transform([]byte(in))
		if err != nil {
			t.Fatalf("cyberphone rejected %s: %v", in, err)
		}
		res := runCLI(t, h, []string{"canonicalize", "-"}, []byte(in))
		if res.exitCode != 0 {
			t.Fatalf("canonicalize %s: code=%d stderr=%q", in, res.exitCode, res.stderr)
		}
		got := strings.TrimSuffix(res.stdout, "\n")
		if got != string(want) {
			t.Fatalf("canonical mismatch for %s\n got=%q\nwant=%q", in, got, want)
		}
	}
}

// These vectors document cases where the cyberphone canonicalizer and
// json-test disagree: it accepts and rewrites inputs that json-test rejects,
// and it replaces lone surrogates that json-test keeps.
func TestCyberphoneGoDifferentialInvalidAcceptance(t *testing.T) {
	h := testHarness(t)

	type testCase struct {
		name        string
		input       []byte
		cyberOutput []byte
		wantClass   string
	}

	cases := []testCase{
		{
			name:        "hex_float_literal",
			input:       []byte(`{"n":0x1p-2}`),
			cyberOutput: []byte(`{"n":0.25}`),
			wantClass:   "EXPECTED_COMMA_OR_RIGHT_BRACE",
		},
		{
			name:        "plus_prefixed_number",
			input:       []byte(`{"n":+1}`),
			cyberOutput: []byte(`{"n":1}`),
			wantClass:   "UNEXPECTED_START_OF_VALUE",
		},
		{
			name:        "leading_zero_number",
			input:       []byte(`{"n":01}`),
			cyberOutput: []byte(`{"n":1}`),
			wantClass:   "INVALID_DIGIT",
		},
		{
			name:        "invalid_utf8_in_string",
			input:       []byte{'{', '"', 's', '"', ':', '"', 0xff, '"', '}'},
			cyberOutput: []byte{'{', '"', 's', '"', ':', '"', 0xff, '"', '}'},
			wantClass:   "INVALID_UTF8_CHAR",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotCyber, err := cyberphone.Transform(tc.input)
			if err != nil {
				t.Fatalf("cyberphone unexpectedly rejected input: %v", err)
			}
			if !bytes.Equal(gotCyber, tc.cyberOutput) {
				t.Fatalf("cyberphone output mismatch got=%q want=%q", gotCyber, tc.cyberOutput)
			}

			res := runCLI(t, h, []string{"canonicalize", "-"}, tc.input)
			if res.exitCode != 1 {
				t.Fatalf("json-test expected exit 1, got=%d stdout=%q stderr=%q", res.exitCode, res.stdout, res.stderr)
			}
			if !strings.Contains(res.stderr, "class="+tc.wantClass) {
				t.Fatalf("json-test stderr missing class %q: %q", tc.wantClass, res.stderr)
			}
		})
	}

	t.Run("lone_surrogate_kept", func(t *testing.T) {
		input := []byte(`{"s":"\uD800\u0041"}`)
		gotCyber, err := cyberphone.Transform(input)
		if err != nil {
			t.Fatalf("cyberphone unexpectedly rejected input: %v", err)
		}
		if !bytes.Equal(gotCyber, []byte("{\"s\":\"\uFFFD\"}")) {
			t.Fatalf("cyberphone output mismatch got=%q", gotCyber)
		}
		if got := canonicalize(t, h, string(input)); got != "{\"s\":\"\\ud800A\"}\n" {
			t.Fatalf("json-test got %q", got)
		}
	})
}
