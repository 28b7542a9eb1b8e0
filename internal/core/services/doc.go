// Package services implements the driving ports: the query planner/ranker,
// the context expander, the result cache, and the index builder. Services
// orchestrate; all storage and full-text work happens behind driven ports.
package services
