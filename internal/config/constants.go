package config

// SourceFileExt is the source extension utils.ExtractModuleName strips from
// a file name and utils.GetModuleDir uses to tell a file path from a
// directory path.
const SourceFileExt = ".py"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".py", ".pyi"}

// MaxIndentWidth is an upper bound on indentation depth. The lexer does not
// consult it: its indentation stack grows without a limit.
const MaxIndentWidth = 256

