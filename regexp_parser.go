package paramq

import (
	"regexp"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegexpParser validates a string against a pattern. The generic kind takes
// the pattern from FieldSpec.Pattern; the objectId and email kinds use a
// fixed pattern and a message naming the expected shape.
type RegexpParser struct {
	kind    Kind
	pattern *regexp.Regexp // nil for the generic kind
	shape   string
	check   func(s string) bool // extra shape check run after the pattern matched
	native  func(state *ParserState, s string) (any, error)
}

// NewRegexpParser validates against FieldSpec.Pattern.
func NewRegexpParser() *RegexpParser {
	return &RegexpParser{kind: KindRegexp}
}

// NewObjectIdParser validates 24 hex character identifiers. With
// FieldSpec.ObjectID set the result is a primitive.ObjectID.
func NewObjectIdParser() *RegexpParser {
	return &RegexpParser{
		kind:    KindObjectId,
		pattern: regexp.MustCompile(ObjectIdPattern),
		shape:   "a valid ObjectId",
		native:  nativeObjectID,
	}
}

// NewEmailParser validates email addresses of at most 254 characters with a
// local part of at most 64.
func NewEmailParser() *RegexpParser {
	return &RegexpParser{
		kind:    KindEmail,
		pattern: regexp.MustCompile(EmailPattern),
		shape:   "a valid email address",
		check:   emailLengthOK,
	}
}

func (rp *RegexpParser) Kind() Kind {
	return rp.kind
}

func (rp *RegexpParser) Parse(state *ParserState) (any, error) {
	return state.run(rp.match)
}

func (rp *RegexpParser) match(state *ParserState) (any, error) {
	pattern, err := rp.resolvePattern(state)
	if err != nil {
		return nil, err
	}

	s, ok := state.Val.(string)
	if !ok || !pattern.MatchString(s) || (rp.check != nil && !rp.check(s)) {
		if rp.shape != "" {
			return nil, state.Fail("%s must be %s", state.Name(), rp.shape)
		}
		return nil, state.Fail("%s must match pattern %s", state.Name(), pattern.String())
	}

	if err := state.ValidateAllowed(s); err != nil {
		return nil, err
	}
	if rp.native != nil {
		return rp.native(state, s)
	}
	return s, nil
}

func (rp *RegexpParser) resolvePattern(state *ParserState) (*regexp.Regexp, error) {
	if rp.pattern != nil {
		return rp.pattern, nil
	}
	switch p := state.Spec.Pattern.(type) {
	case *regexp.Regexp:
		if p != nil {
			return p, nil
		}
	case string:
		if p != "" {
			re, err := compilePattern(p)
			if err != nil {
				return nil, configError(state.Name(), ErrMissingPattern, "invalid pattern %q: %v", p, err)
			}
			return re, nil
		}
	}
	return nil, configError(state.Name(), ErrMissingPattern, "")
}

func nativeObjectID(state *ParserState, s string) (any, error) {
	if !state.Spec.ObjectID {
		return s, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, state.Fail("%s must be a valid ObjectId", state.Name())
	}
	return id, nil
}

func emailLengthOK(s string) bool {
	if utf8.RuneCountInString(s) > emailMaxLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '@' {
			return i <= emailLocalMaxLength
		}
	}
	return false
}
