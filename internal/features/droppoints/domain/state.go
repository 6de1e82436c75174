package domain

// ResolveState derives the current perceived fill state of a drop point
// from its most recent report and most recent visit. It is a pure function
// of the two logs:
//
//   - no report, no visit: the state is unknown
//   - only a report: the reported state stands
//   - a visit newer than the last report that emptied the point overrides
//     the report with EMPTY; any other visit leaves the reported state in
//     place. Only an EMPTIED visit clears state; a NO_ACTION visit after a
//     FULL report still resolves to FULL.
func ResolveState(lastReport *Report, lastVisit *Visit) ReportState {
	if lastReport == nil {
		return ReportStateUnknown
	}
	if lastVisit != nil &&
		lastVisit.Time.After(lastReport.Time) &&
		lastVisit.Action == VisitActionEmptied {
		return ReportStateEmpty
	}
	return lastReport.State
}
