// Package timezone pins the ledger to the hotel's wall clock. Stays, service
// days and invoice due dates are calendar dates, so every "today" and every
// parsed date is taken in the zone named by APP_TIMEZONE (UTC when unset).
package timezone
