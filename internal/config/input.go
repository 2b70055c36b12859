package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sahnico/taxcalc/internal/domain"
	"github.com/sahnico/taxcalc/pkg/fiscal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// InputParser loads and validates taxpayer documents
type InputParser struct {
	validate *validator.Validate
	logger   *zap.Logger
}

// NewInputParser creates a new input parser. A nil logger disables logging.
func NewInputParser(logger *zap.Logger) *InputParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InputParser{validate: newValidator(), logger: logger}
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field paths using the YAML names users actually typed
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Amounts are decimals; compare them numerically for gte/lte
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return panPattern.MatchString(fl.Field().String())
	})
	return v
}

// LoadFromFile loads a taxpayer document from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxpayerInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	input, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return input, nil
}

// Parse decodes and validates a taxpayer document
func (ip *InputParser) Parse(data []byte) (*domain.TaxpayerInput, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var input domain.TaxpayerInput
	if err := dec.Decode(&input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	input.Taxpayer.PAN = strings.ToUpper(strings.TrimSpace(input.Taxpayer.PAN))

	if err := ip.Validate(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &input, nil
}

// Validate checks struct constraints and the assessment year format
func (ip *InputParser) Validate(input *domain.TaxpayerInput) error {
	if err := ip.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatValidationErrors(verrs)
		}
		return err
	}
	if _, err := fiscal.ParseAssessmentYear(input.Taxpayer.AssessmentYear); err != nil {
		return err
	}
	return nil
}

// ApplyDeductionCaps reduces deductions to the statutory limits of rules and
// logs each deduction that was reduced.
func (ip *InputParser) ApplyDeductionCaps(input *domain.TaxpayerInput, rules *domain.TaxRules) []domain.CappedDeduction {
	capped, applied := rules.DeductionLimits.Apply(input.Deductions)
	for _, c := range applied {
		ip.logger.Warn("deduction capped at statutory limit",
			zap.String("op", "config.ApplyDeductionCaps"),
			zap.String("pan", input.Taxpayer.PAN),
			zap.String("section", c.Section),
			zap.String("requested", c.Requested.String()),
			zap.String("allowed", c.Allowed.String()),
		)
	}
	input.Deductions = capped
	return applied
}

func formatValidationErrors(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := e.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, validationMessage(e)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "pan":
		return "must be a valid PAN such as ABCDE1234F"
	case "email":
		return "invalid email format"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	default:
		return "invalid value"
	}
}

// CreateExampleInput returns a sample taxpayer document
func (ip *InputParser) CreateExampleInput() *domain.TaxpayerInput {
	return &domain.TaxpayerInput{
		Taxpayer: domain.Taxpayer{
			PAN:               "ABCDE1234F",
			Name:              "Rahul Sharma",
			AssessmentYear:    "2024-25",
			Category:          "individual",
			ResidentialStatus: "resident",
			AgeCategory:       "below60",
			Email:             "rahul.sharma@example.com",
		},
		PreferredRegime: domain.RegimeNew,
		Income: domain.IncomeProfile{
			Salary:        decimal.NewFromInt(1200000),
			HouseProperty: decimal.NewFromInt(60000),
			OtherSources:  decimal.NewFromInt(25000),
		},
		Deductions: domain.DeductionSet{
			Section80C:     decimal.NewFromInt(150000),
			Section80D:     decimal.NewFromInt(25000),
			Section80CCD1B: decimal.NewFromInt(50000),
		},
		Payments: domain.Payments{
			TDS:        decimal.NewFromInt(90000),
			AdvanceTax: decimal.NewFromInt(10000),
		},
	}
}
