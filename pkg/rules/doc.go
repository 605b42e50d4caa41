// Package rules loads form validation rules: which converter and which
// ordered validators apply to each field of a form.
//
// Rules come from JSON or YAML documents shaped as
//
//	forms:
//	  signup:
//	    fields:
//	      - id: signup:age
//	        converter: {name: integer}
//	        validators:
//	          - type: range
//	            params: {minimum: 18}
//
// or are derived from the request body schemas of an OpenAPI 3 document with
// FromOpenAPI.
package rules
