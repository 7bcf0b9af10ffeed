// Package echo translates low-level harness status codes into structured,
// human-interpretable signals that say which invariant class was violated,
// how severe it is, and how to recover, without exposing internal mechanics.
// It is a pure lookup/formatting layer, structurally independent of the
// simulation and gate core.
package echo

import (
	"strings"
)

// InvariantClass is a high-level violation category humans can reason
// about without knowledge of internal mechanics.
type InvariantClass string

const (
	InvariantSpatial     InvariantClass = "spatial"     // memory bounds, spatial constraints
	InvariantTemporal    InvariantClass = "temporal"    // timing, loop bounds, deadlines
	InvariantExistential InvariantClass = "existential" // null references, resource existence
	InvariantConsistency InvariantClass = "consistency" // state consistency, data integrity
	InvariantUnknown     InvariantClass = "unknown"     // unclassified or novel violation
)

// RecoveryStrategy is a high-level response that guides human recovery.
type RecoveryStrategy string

const (
	RecoverValidateInputs      RecoveryStrategy = "validate_inputs"
	RecoverIncreaseBounds      RecoveryStrategy = "increase_bounds"
	RecoverCheckInitialization RecoveryStrategy = "check_initialization"
	RecoverReviewLogic         RecoveryStrategy = "review_logic"
	RecoverReduceComplexity    RecoveryStrategy = "reduce_complexity"
	RecoverRetryWithBackoff    RecoveryStrategy = "retry_with_backoff"
)

// invariantByStatus maps harness status codes to invariant classes.
var invariantByStatus = map[string]InvariantClass{
	"SBM_ERR_NULL":         InvariantExistential,
	"SBM_ERR_OOB":          InvariantSpatial,
	"SBM_ERR_TIMEOUT":      InvariantTemporal,
	"SBM_ERR_INCONSISTENT": InvariantConsistency,
	"SBM_ERR_UNKNOWN":      InvariantUnknown,
}

// recoveryByClass maps invariant classes to ordered recovery strategies.
var recoveryByClass = map[InvariantClass][]RecoveryStrategy{
	InvariantExistential: {RecoverCheckInitialization, RecoverValidateInputs},
	InvariantSpatial:     {RecoverValidateInputs, RecoverIncreaseBounds},
	InvariantTemporal:    {RecoverReduceComplexity, RecoverIncreaseBounds},
	InvariantConsistency: {RecoverReviewLogic, RecoverRetryWithBackoff},
	InvariantUnknown:     {RecoverReviewLogic},
}

var descriptionByClass = map[InvariantClass]string{
	InvariantExistential: "A required resource or reference was not present when needed. " +
		"This typically indicates missing initialization or invalid state assumptions.",
	InvariantSpatial: "An operation attempted to access memory or resources outside allowed bounds. " +
		"This indicates a constraint on size or position was violated.",
	InvariantTemporal: "An operation exceeded time or iteration constraints. " +
		"This indicates the operation took too long or performed too many steps.",
	InvariantConsistency: "The system detected an inconsistent state that violates safety invariants. " +
		"This indicates a logic error or unexpected state transition.",
	InvariantUnknown: "The system detected a safety violation that does not fit standard patterns. " +
		"This requires detailed investigation of the operation context.",
}

var guidanceByStrategy = map[RecoveryStrategy]string{
	RecoverCheckInitialization: "Verify all required resources are properly initialized before use",
	RecoverValidateInputs:      "Check that all input parameters meet preconditions and are within valid ranges",
	RecoverIncreaseBounds:      "Consider increasing resource limits (array sizes, iteration counts, timeouts) if the operation is legitimate",
	RecoverReviewLogic:         "Review the operation logic to ensure it correctly handles all cases and maintains invariants",
	RecoverReduceComplexity:    "Simplify the operation or reduce the amount of work performed to meet constraints",
	RecoverRetryWithBackoff:    "Attempt the operation again after a delay, as the issue may be transient",
}

// Recovery pairs a strategy with its human-readable guidance.
type Recovery struct {
	Strategy RecoveryStrategy `json:"strategy"`
	Guidance string           `json:"guidance"`
}

// Echo is the structured causal signal returned for a reflected action.
// It carries enough information for a human to infer the violated
// invariant class and recover, with internal mechanics stripped out.
type Echo struct {
	InvariantClass InvariantClass    `json:"invariant_class"`
	Description    string            `json:"description"`
	Recoveries     []Recovery        `json:"recovery_strategies"`
	Severity       string            `json:"severity"`
	Context        map[string]string `json:"context"`
}

// Translate converts a raw status code and optional context into a
// structured echo. Unrecognized codes map to the unknown class rather
// than erroring: the layer must degrade gracefully on novel codes.
//
// Recognized context keys: "operation", "file" + "line" (collapsed into a
// location without the full path), and "msg" (stripped of internal detail).
func Translate(statusCode string, context map[string]string) Echo {
	class, ok := invariantByStatus[statusCode]
	if !ok {
		class = InvariantUnknown
	}

	strategies := recoveryByClass[class]
	recoveries := make([]Recovery, 0, len(strategies))
	for _, s := range strategies {
		recoveries = append(recoveries, Recovery{Strategy: s, Guidance: guidanceByStrategy[s]})
	}

	return Echo{
		InvariantClass: class,
		Description:    descriptionByClass[class],
		Recoveries:     recoveries,
		Severity:       assessSeverity(class),
		Context:        sanitizeContext(context),
	}
}

// assessSeverity grades the impact of a violation. Every violation is at
// least medium; classes with corruption potential are critical.
func assessSeverity(class InvariantClass) string {
	switch class {
	case InvariantExistential, InvariantSpatial:
		return "critical"
	case InvariantConsistency, InvariantTemporal:
		return "high"
	default:
		return "medium"
	}
}

// sanitizeContext keeps actionable fields and abstracts away
// implementation detail: full paths become bare filenames and messages
// lose their variable-specific suffix.
func sanitizeContext(context map[string]string) map[string]string {
	sanitized := map[string]string{}
	if op, ok := context["operation"]; ok {
		sanitized["operation"] = op
	}
	if file, ok := context["file"]; ok {
		if line, ok := context["line"]; ok {
			parts := strings.Split(file, "/")
			sanitized["location"] = parts[len(parts)-1] + ":" + line
		}
	}
	if msg, ok := context["msg"]; ok {
		sanitized["message"] = sanitizeMessage(msg)
	}
	return sanitized
}

// sanitizeMessage drops everything after the first ": ", which is where
// internal variable names and values live (e.g. "Null pointer: data").
func sanitizeMessage(msg string) string {
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
