package config

// Version is the coolc tool version, checked against a project's `coolc`
// constraint.
const Version = "1.3.0"

const SourceFileExt = ".cl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".cl", ".cool"}

// ProjectFileName is looked up in the working directory when -config is not given.
const ProjectFileName = "coolc.yaml"

// Built-in class names
const (
	ObjectClass   = "Object"
	IOClass       = "IO"
	IntClass      = "Int"
	StringClass   = "String"
	BoolClass     = "Bool"
	SelfTypeClass = "SELF_TYPE"
)

// SelfName is the implicit receiver.
const SelfName = "self"

// Built-in method names
const (
	AbortMethod     = "abort"
	TypeNameMethod  = "type_name"
	CopyMethod      = "copy"
	OutStringMethod = "out_string"
	OutIntMethod    = "out_int"
	InStringMethod  = "in_string"
	InIntMethod     = "in_int"
	LengthMethod    = "length"
	ConcatMethod    = "concat"
	SubstrMethod    = "substr"
)

// Program entry point
const (
	MainClass  = "Main"
	MainMethod = "main"
)

// MaxStringLength is the longest string constant the lexer accepts.
const MaxStringLength = 1024
