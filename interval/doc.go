/*Package interval implements operations on sets of genomic coordinates.

  Schedule solves the weighted interval scheduling problem: given scored
  intervals, it selects the maximum-total-weight subset with no two members
  overlapping.  Intervals that merely touch (one ending at the position where
  the other starts) count as overlapping, matching closed [start, end]
  annotation coordinates.

  BEDUnion is an interval-union optimized for region restriction with BED
  files.  (Note the 'union'.  Overlapping BED intervals are merged, not
  tracked separately.)

  Every position is assumed to fit in a PosType, which is currently defined
  as int32 since that's what BAM files are limited to.
*/
package interval
