// Package util provides shared validation helpers.
package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateNonEmpty ensures a string is not empty or whitespace-only
func ValidateNonEmpty(value string, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty or contain only whitespace", fieldName)
	}
	return nil
}

// ValidateMinMaxReplicas ensures min <= max and reasonable bounds
func ValidateMinMaxReplicas(minReplicas, maxReplicas int) error {
	if minReplicas > maxReplicas {
		return fmt.Errorf("minimum replicas (%d) cannot be greater than maximum replicas (%d)", minReplicas, maxReplicas)
	}
	if minReplicas < 1 {
		return fmt.Errorf("minimum replicas must be at least 1")
	}
	if maxReplicas > 100 {
		return fmt.Errorf("maximum replicas cannot exceed 100")
	}
	return nil
}

// ValidateResourceString performs basic validation for CPU/memory strings.
// The resource name decides the accepted syntax: "cpu" follows the
// Kubernetes millicore convention, memory-like resources require a binary
// unit suffix.
func ValidateResourceString(value, resource string) error {
	if value == "" {
		return nil
	}
	switch resource {
	case "cpu":
		v := strings.TrimSpace(value)
		// Allow millicores like 500m (Kubernetes convention)
		if strings.HasSuffix(v, "m") {
			num := strings.TrimSuffix(v, "m")
			if num == "" {
				return fmt.Errorf("cpu '%s' is invalid: missing number before 'm' (e.g., 500m)", value)
			}
			n, err := strconv.Atoi(num)
			if err != nil || n < 0 {
				return fmt.Errorf("cpu '%s' is invalid: 'm' suffix requires a non-negative integer (e.g., 500m)", value)
			}
			return nil
		}
		// Otherwise require a valid (non-negative) number like 1, 2.5
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("cpu '%s' is invalid: must be a number (e.g., 500m, 1, 2.5)", value)
		}
		return nil
	case "memory", "ephemeral-storage":
		if !strings.HasSuffix(value, "Ki") && !strings.HasSuffix(value, "Mi") &&
			!strings.HasSuffix(value, "Gi") && !strings.HasSuffix(value, "Ti") {
			return fmt.Errorf("%s '%s' is invalid: must include unit (e.g., 512Mi, 1Gi)", resource, value)
		}
	}
	return nil
}
