package handler

import (
	"net/http"
	"reflect"

	"erpvendas/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// gt=0 and required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Error messages name fields the way the forms label them.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		return f.Name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			c.Error(err)
			return false
		}
		e := validationError(verrs)
		c.JSON(e.Status(), e.Body())
		return false
	}
	return true
}

// validationError reports missing fields first ("Nome e CNPJ são
// obrigatórios"); when nothing is missing it names the invalid ones.
func validationError(verrs validator.ValidationErrors) *apierror.Error {
	var missing, invalid []string
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		e := apierror.MissingFields(missing...)
		e.Fields = fields
		return e
	}
	msg := apierror.JoinLabels(invalid) + " inválido"
	if len(invalid) > 1 {
		msg += "s"
	}
	e := apierror.Validation(msg)
	e.Fields = fields
	return e
}

// respondError writes domain errors with their status; anything else is
// handed to the ErrorHandler middleware as an internal error.
func respondError(c *gin.Context, err error) {
	if e, ok := apierror.As(err); ok {
		c.JSON(e.Status(), e.Body())
		return
	}
	_ = c.Error(err)
}

// idParam reads the record id from the path (/:id) or the ?id= query
// parameter. On failure it writes a 400 and returns false.
func idParam(c *gin.Context, entidade string) (uuid.UUID, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		c.JSON(http.StatusBadRequest, apierror.New("ID "+entidade+" é obrigatório"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// hasID reports whether the request addresses a single record.
func hasID(c *gin.Context) bool {
	return c.Param("id") != "" || c.Query("id") != ""
}

func deleted(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
