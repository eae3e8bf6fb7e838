package expr

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func mustEval(t *testing.T, env *Env, src string) Value {
	t.Helper()
	v, err := env.Eval(src)
	if err != nil {
		t.Fatalf("Eval(%q) error = %v", src, err)
	}
	return v
}

func TestEval(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"7 % -2", "1"},
		{"- -5", "5"},
		{"+5 - 10", "-5"},
		{"1 << 100", "1267650600228229401496703205376"},
		{"1 << 64 + 1", "36893488147419103232"},
		{"(1 << 64) >> 63", "2"},
		{"5 >> -2", "20"},
		{"-9 >> 1", "-4"},
		{"0x_ff + 0o17 + 0b101", "275"},
		{"1_000_000 * 1_000_000", "1000000000000"},
		{"3 < 4", "1"},
		{"3 >= 4", "0"},
		{"2 + 2 == 4", "1"},
		{"1 != 1", "0"},
		{"1 << 2 < 5", "1"},
		{"abs(-12)", "12"},
		{"pow(2, 128)", "340282366920938463463374607431768211456"},
		{"pow(-3, 3)", "-27"},
		{"pow(-1, 1000000000000)", "1"},
		{"pow(0, 0)", "1"},
		{"fact(25)", "15511210043330985984000000"},
		{"fact(0)", "1"},
		{"bit(5, 0) + bit(5, 1)", "1"},
		{"bit(-5, 2)", "1"},
		{"setbit(0, 70, 1)", "1180591620717411303424"},
		{"setbit(-7, 0, 0)", "-6"},
		{"bitlen(pow(2, 100))", "101"},
		{"bitlen(0)", "0"},
		{"18446744073709551615 * 18446744073709551615", "340282366920938463426481119284349108225"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			if got := mustEval(t, NewEnv(), tt.src).String(); got != tt.want {
				t.Errorf("Eval(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalMatchesMathBig(t *testing.T) {
	t.Parallel()
	a, _ := new(big.Int).SetString("-123456789012345678901234567890123456789", 10)
	b, _ := new(big.Int).SetString("98765432109876543210987", 10)
	env := NewEnv()
	mustEval(t, env, "a = "+a.String())
	mustEval(t, env, "b = "+b.String())

	tests := []struct {
		src  string
		want *big.Int
	}{
		{"a + b", new(big.Int).Add(a, b)},
		{"a - b", new(big.Int).Sub(a, b)},
		{"a * b", new(big.Int).Mul(a, b)},
		{"a / b", new(big.Int).Quo(a, b)},
		{"a % b", new(big.Int).Rem(a, b)},
		{"b / a", new(big.Int).Quo(b, a)},
	}
	for _, tt := range tests {
		if got := mustEval(t, env, tt.src).String(); got != tt.want.String() {
			t.Errorf("Eval(%q) = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestEnvVariables(t *testing.T) {
	t.Parallel()
	env := NewEnv()
	mustEval(t, env, "x = y = 6")
	if got := mustEval(t, env, "x * y").String(); got != "36" {
		t.Errorf("x * y = %s, want 36", got)
	}
	if got := mustEval(t, env, "_ + 1").String(); got != "37" {
		t.Errorf("_ + 1 = %s, want 37", got)
	}
	if got := strings.Join(env.Names(), ","); got != "x,y" {
		t.Errorf("Names() = %s, want x,y", got)
	}

	// Set stores an independent copy.
	v := bigint.NewInt(10)
	env.Set("z", v)
	v.SetInt64(11)
	if got, _ := env.Get("z"); got.Cmp(bigint.NewInt(10)) != 0 {
		t.Errorf("z = %v, want 10", got)
	}
}

func TestEvalFloat(t *testing.T) {
	t.Parallel()
	env := NewEnv()
	mustEval(t, env, "41")
	v := mustEval(t, env, "float(1 << 80)")
	if !v.IsFloat || v.Float != 1208925819614629174706176.0 {
		t.Errorf("float(1<<80) = %+v", v)
	}
	if v.String() != "1.2089258196146292e+24" {
		t.Errorf("String() = %s", v.String())
	}
	// Float results do not replace the last integer result.
	if got := mustEval(t, env, "_").String(); got != "41" {
		t.Errorf("_ = %s, want 41", got)
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src     string
		pos     int
		msg     string
		isCause error
	}{
		{"1 / 0", 2, "division by zero", bigint.ErrDivisionByZero},
		{"5 % (3 - 3)", 2, "division by zero", bigint.ErrDivisionByZero},
		{"1 +", 3, "unexpected end of input", nil},
		{"(1 + 2", 6, `expected ")"`, nil},
		{"2 $ 3", 2, "unexpected character", nil},
		{"0x", 0, "invalid number", bigint.ErrSyntax},
		{"12ab", 0, "invalid number", bigint.ErrSyntax},
		{"q + 1", 0, `undefined variable "q"`, nil},
		{"nope(1)", 0, `unknown function "nope"`, nil},
		{"pow(2)", 0, "takes 2 argument(s)", nil},
		{"pow(2, -1)", 0, "exponent must be non-negative", nil},
		{"pow(2, 1 << 70)", 0, "exponent too large", bigint.ErrRange},
		{"pow(3, 100000000)", 0, "pow result exceeds", nil},
		{"1 << (1 << 30)", 2, "shift result exceeds", nil},
		{"1 >> -(1 << 70)", 2, "shift result exceeds", nil},
		{"setbit(1, 2, 2)", 0, "bit value must be 0 or 1", nil},
		{"bit(1, -1)", 0, "bit index must be non-negative", nil},
		{"float(1) + 1", 0, "float value used in integer expression", nil},
		{"_ = 3", 2, "cannot assign to _", nil},
		{"1 2", 2, "unexpected number", nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			_, err := NewEnv().Eval(tt.src)
			if err == nil {
				t.Fatalf("Eval(%q) should fail", tt.src)
			}
			var evalErr apperrors.EvalError
			if !errors.As(err, &evalErr) || evalErr.Expr != tt.src {
				t.Fatalf("Eval(%q) error = %v, want EvalError for the source", tt.src, err)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Eval(%q) error = %v, want *Error", tt.src, err)
			}
			if e.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", e.Pos, tt.pos)
			}
			if !strings.Contains(e.Msg, tt.msg) {
				t.Errorf("Msg = %q, want it to contain %q", e.Msg, tt.msg)
			}
			if tt.isCause != nil && !errors.Is(err, tt.isCause) {
				t.Errorf("error %v should wrap %v", err, tt.isCause)
			}
		})
	}
}

func TestEvalMaxBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src     string
		wantErr string
	}{
		{"pow(2, 63)", ""},
		{"pow(-2, 63)", ""},
		{"pow(3, 40)", ""},
		{"pow(2, 64)", "pow result exceeds 64 bits"},
		{"pow(3, 41)", "pow result exceeds 64 bits"},
		{"pow(3, 63)", "pow result exceeds 64 bits"},
		{"pow(pow(2, 40) + 1, 2)", "pow result exceeds 64 bits"},
		{"1 << 63", ""},
		{"1 << 64", "shift result exceeds"},
		{"fact(20)", ""},
		{"fact(21)", "fact result exceeds 64 bits"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			env := NewEnv()
			env.MaxBits = 64
			v, err := env.Eval(tt.src)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Eval(%q) error = %v", tt.src, err)
				}
				if bits := v.Int.BitLen(); bits > 64 {
					t.Errorf("Eval(%q) has %d bits, want at most 64", tt.src, bits)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Eval(%q) error = %v, want %q", tt.src, err, tt.wantErr)
			}
		})
	}
}

func TestEvalFailureKeepsLastResult(t *testing.T) {
	t.Parallel()
	env := NewEnv()
	mustEval(t, env, "9")
	if _, err := env.Eval("1/0"); err == nil {
		t.Fatal("expected division error")
	}
	if got := mustEval(t, env, "_").String(); got != "9" {
		t.Errorf("_ = %s, want 9", got)
	}
}

func TestBuiltins(t *testing.T) {
	t.Parallel()
	got := Builtins()
	if len(got) != 7 || got[0] != "abs(x)" {
		t.Errorf("Builtins() = %v", got)
	}
}
