package config

import (
	"testing"

	"github.com/corelang/pyparse/internal/token"
)

func TestPrecedenceLadderIsStrictlyIncreasing(t *testing.T) {
	levels := []int{
		PrecLowest, PrecLambda, PrecTernary, PrecOr, PrecAnd, PrecNot,
		PrecComparison, PrecBitOr, PrecBitXor, PrecBitAnd, PrecShift,
		PrecAdditive, PrecMultiplicative, PrecUnary, PrecPower, PrecAwait, PrecCall,
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Fatalf("precedence level %d (%d) does not exceed level %d (%d)", i, levels[i], i-1, levels[i-1])
		}
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	info, ok := BinaryOperators[token.DSTAR]
	if !ok {
		t.Fatalf("expected ** to be registered")
	}
	if info.Assoc != AssocRight {
		t.Fatalf("expected ** to be right-associative")
	}
}

func TestMultiplicativeBindsTighterThanAdditive(t *testing.T) {
	if BinaryOperators[token.STAR].Precedence <= BinaryOperators[token.PLUS].Precedence {
		t.Fatalf("expected * to bind tighter than +")
	}
}

func TestAugAssignTokensDesugarToBareOperator(t *testing.T) {
	if AugAssignTokens[token.PLUS_EQ] != token.PLUS {
		t.Fatalf("expected += to desugar to +")
	}
	if AugAssignTokens[token.DSTAR_EQ] != token.DSTAR {
		t.Fatalf("expected **= to desugar to **")
	}
}

func TestComparisonOperatorsExcludedFromBinaryOperators(t *testing.T) {
	for tok := range ComparisonOperators {
		if _, ok := BinaryOperators[tok]; ok {
			t.Fatalf("comparison token %s must not also appear in BinaryOperators", tok)
		}
	}
}
