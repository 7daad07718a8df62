// Package schema provides response body validators for the after pipeline.
//
// Three flavours are available:
//
//   - JSON / JSONFile: JSON Schema documents (YAML files accepted)
//   - Struct[T]: Go structs with `validate` tags
//   - Func: any func(any) error
//
// Every failure is a *Error listing the offending paths:
//
//	var se *schema.Error
//	if errors.As(err, &se) {
//	    for _, is := range se.Issues {
//	        fmt.Println(is.Path, is.Message)
//	    }
//	}
package schema
