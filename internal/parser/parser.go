package parser

import (
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors" // Custom errors package
	"github.com/mcncl/jsonlens/internal/models"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// unexpectedEnd is the message reported for truncated documents.
const unexpectedEnd = "unexpected end of JSON input"

// Parse decodes a single JSON value from reader into a value tree.
// Nesting deeper than maxDepth fails with errors.ErrDepthExceeded; a
// maxDepth of zero or less disables the check.
func Parse(reader io.Reader, maxDepth int) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber() // Keep number literals intact until we convert them

	d := &decoder{dec: dec, maxDepth: maxDepth}

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewSyntaxError(unexpectedEnd, errors.ErrEmptyInput)
		}
		return models.Value{}, syntaxError(err)
	}

	root, err := d.value(tok, 0)
	if err != nil {
		return models.Value{}, err
	}

	// Anything but whitespace after the root value is an error.
	if tok, err := dec.Token(); err == nil {
		return models.Value{}, errors.NewSyntaxError(
			fmt.Sprintf("unexpected data after top-level value: %v (offset %d)", describeToken(tok), dec.InputOffset()),
			errors.ErrMultipleJSON,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, syntaxError(err)
	}

	return root, nil
}

type decoder struct {
	dec      *json.Decoder
	maxDepth int
}

// next reads a token, turning EOF inside a container into a syntax error.
func (d *decoder) next() (json.Token, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewSyntaxError(unexpectedEnd, errors.ErrInvalidJSON)
		}
		return nil, syntaxError(err)
	}
	return tok, nil
}

// value converts tok, already read at nesting level level, into a Value.
func (d *decoder) value(tok json.Token, level int) (models.Value, error) {
	switch t := tok.(type) {
	case nil:
		return models.NullValue(), nil
	case bool:
		return models.BoolValue(t), nil
	case string:
		return models.StringValue(t), nil
	case json.Number:
		return number(t)
	case json.Delim:
		switch t {
		case '{':
			return d.object(level)
		case '[':
			return d.array(level)
		}
	}
	// Closing delimiters in value position are rejected by the decoder
	// itself, so this is unreachable for well-behaved readers.
	return models.Value{}, errors.NewSyntaxError(fmt.Sprintf("unexpected token %v", tok), errors.ErrInvalidJSON)
}

func (d *decoder) object(level int) (models.Value, error) {
	members := orderedmap.New[string, models.Value]()
	for d.dec.More() {
		if err := d.checkDepth(level + 1); err != nil {
			return models.Value{}, err
		}
		keyTok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, errors.NewSyntaxError(fmt.Sprintf("object key must be a string, got %v", describeToken(keyTok)), errors.ErrInvalidJSON)
		}
		tok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		member, err := d.value(tok, level+1)
		if err != nil {
			return models.Value{}, err
		}
		// A repeated key keeps its first position and takes the last value.
		members.Set(key, member)
	}
	if _, err := d.next(); err != nil { // closing '}'
		return models.Value{}, err
	}
	return models.Value{Kind: models.Object, Members: members}, nil
}

func (d *decoder) array(level int) (models.Value, error) {
	items := []models.Value{}
	for d.dec.More() {
		if err := d.checkDepth(level + 1); err != nil {
			return models.Value{}, err
		}
		tok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		item, err := d.value(tok, level+1)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	if _, err := d.next(); err != nil { // closing ']'
		return models.Value{}, err
	}
	return models.Value{Kind: models.Array, Items: items}, nil
}

func (d *decoder) checkDepth(level int) error {
	if d.maxDepth > 0 && level > d.maxDepth {
		return errors.NewDepthError(level, d.maxDepth)
	}
	return nil
}

func number(n json.Number) (models.Value, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		// Out-of-range literals saturate to ±Inf, which serializes as null.
		var numErr *strconv.NumError
		if !stderrors.As(err, &numErr) || !stderrors.Is(numErr.Err, strconv.ErrRange) {
			return models.Value{}, errors.NewSyntaxError(fmt.Sprintf("invalid number literal %q", string(n)), errors.ErrInvalidJSON)
		}
	}
	return models.NumberValue(f), nil
}

// syntaxError converts a decoder error into a syntax AppError carrying the
// decoder's message and, when known, the byte offset.
func syntaxError(err error) error {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewSyntaxError(
			fmt.Sprintf("%s (offset %d)", syntaxErr.Error(), syntaxErr.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewSyntaxError(unexpectedEnd, errors.ErrInvalidJSON)
	}
	return errors.NewSyntaxError(err.Error(), errors.ErrInvalidJSON)
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("'%s'", t.String())
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string, maxDepth int) (models.Value, error) {
	return Parse(strings.NewReader(jsonString), maxDepth)
}

// ReadFile reads JSON text from a file path
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}
