package cliContext

type Context struct {
	Debug     bool    `env:"PHONOLAB_DEBUG,DEBUG" default:"false" hidden:"" help:"DEPRECATED, use --log-level=debug instead. Enable debug logging"`
	LogLevel  *string `env:"PHONOLAB_LOG_LEVEL" enum:"error,warn,info,debug,trace" help:"Set the level of logs to output [${enum}]"`
	LogFormat *string `env:"PHONOLAB_LOG_FORMAT" default:"default" enum:"default,text,json" help:"Set the format of logs to output [${enum}]"`
}

// IsDebug reports whether debug output was asked for by either flag.
func (c *Context) IsDebug() bool {
	return c.Debug || (c.LogLevel != nil && (*c.LogLevel == "debug" || *c.LogLevel == "trace"))
}
