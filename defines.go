package paramq

// Kind names a parser implementation in a ParserRegistry.
type Kind string

// Built in parser kinds.
const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindId       Kind = "id"
	KindIdList   Kind = "idList"
	KindDate     Kind = "date"
	KindBool     Kind = "bool"
	KindJson     Kind = "json"
	KindRegexp   Kind = "regexp"
	KindObjectId Kind = "objectId"
	KindEmail    Kind = "email"
	KindUUID     Kind = "uuid"
	KindArray    Kind = "array"
	KindCustom   Kind = "custom"
)

// Section names a sub-map of a builder's destination.
type Section string

// constants for destination sections
const (
	SectionRoot       Section = ""
	SectionStaging    Section = "_staging_"
	SectionFilter     Section = "filter"
	SectionFields     Section = "fields"
	SectionPagination Section = "pagination"
	SectionSorting    Section = "sorting"
)

// Operator is an abstract comparison alias recorded for filter fields.
type Operator string

// Operator aliases understood by every dialect table.
const (
	OpEq   Operator = "eq"
	OpNe   Operator = "ne"
	OpGt   Operator = "gt"
	OpGte  Operator = "gte"
	OpLt   Operator = "lt"
	OpLte  Operator = "lte"
	OpIn   Operator = "in"
	OpNin  Operator = "nin"
	OpLike Operator = "like"
)

// Dialect names accepted by QueryBuilder.Build.
const (
	DialectMongoose  = "mongoose"
	DialectSequelize = "sequelize"
)

// constants for parse defaults
const (
	// DefaultDateFormat matches an ISO-8601 timestamp with a numeric offset.
	DefaultDateFormat = "YYYY-MM-DDTHH:mm:ssZ"

	ItemFieldName = "item"

	DefaultFieldsName     = "fields"
	DefaultPageName       = "page"
	DefaultCountName      = "count"
	DefaultSortByName     = "sortBy"
	DefaultSortDirName    = "sortDirection"
	DefaultPage           = 0
	DefaultCount          = 10
	MaxCount              = 50
	MaxPage               = 1<<31 - 1
	SortAsc               = "asc"
	SortDesc              = "desc"
	FieldsSeparator       = " "
	PaginationPageKey     = "page"
	PaginationCountKey    = "count"
	SortingByKey          = "sortBy"
	SortingDirectionKey   = "sortDirection"
	FieldsKey             = "fields"
	stagingRawFieldsKey   = "rawFields"
	allowedValueSeparator = ","
	idListSeparator       = ","
)

// Patterns for the fixed-shape regexp parsers.
const (
	ObjectIdPattern = `^[0-9a-fA-F]{24}$`
	EmailPattern    = "^[-!#$%&'*+/0-9=?A-Z^_`a-z{|}~]+(\\.[-!#$%&'*+/0-9=?A-Z^_`a-z{|}~]+)*" +
		`@[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`

	emailMaxLength      = 254
	emailLocalMaxLength = 64
)
