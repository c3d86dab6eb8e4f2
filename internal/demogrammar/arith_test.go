package demogrammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/excursus/citron/lex"
	"github.com/excursus/citron/parse"
)

func evalLine(t *testing.T, line string) (float64, error) {
	t.Helper()

	lx := Lexer()
	p := parse.NewParser[Token, float64, float64](Tables(), Reduction(), 0)

	var tokenizeErr error
	lexErr := lx.Tokenize(line, func(tok lex.Token) {
		if tokenizeErr != nil {
			return
		}
		code, value, ok := TokenCodeForData(tok.Data)
		if !ok {
			return
		}
		if err := p.Consume(Token{Code: code, Value: value}, code); err != nil {
			tokenizeErr = err
		}
	}, nil)
	if lexErr != nil {
		return 0, lexErr
	}
	if tokenizeErr != nil {
		return 0, tokenizeErr
	}

	return p.EndParsing()
}

func Test_Arith_endToEnd(t *testing.T) {
	assert := assert.New(t)

	result, err := evalLine(t, "3+4")
	assert.NoError(err)
	assert.Equal(7.0, result)
}

func Test_Arith_allOperators(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		line string
		want float64
	}{
		{"3+4", 7},
		{"10-6", 4},
		{"5*6", 30},
		{"8/2", 4},
	}

	for _, c := range cases {
		result, err := evalLine(t, c.line)
		assert.NoError(err)
		assert.Equal(c.want, result)
	}
}

func Test_Arith_divisionByZero(t *testing.T) {
	assert := assert.New(t)

	_, err := evalLine(t, "1/0")
	assert.Error(err)
}
