package tools

func stringArgument(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func boolArgument(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}
