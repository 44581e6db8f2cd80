/*
bio-gff-resolve removes overlapping features from a GFF3 annotation.

Features are grouped by (seqid, type, strand).  Within each group, the subset
of mutually non-overlapping features with the largest total score is kept,
and everything else is dropped.  Features that merely touch (one ending at the
position where the next starts) count as overlapping.

Usage:
  bio-gff-resolve [flags] input.gff3

The input may be gzipped, and may be any path the grailbio file layer
understands (local or s3://).  The result is written to -out (default
stdout), preceded by "##gff-version 3" and "##date" header lines.

Examples:

1. Resolve overlaps on each strand separately

    bio-gff-resolve genes.gff3 > resolved.gff3

2. Let features on opposite strands compete, restricted to a target BED

    bio-gff-resolve -ignore-strand -regions targets.bed -out resolved.gff3.gz genes.gff3
*/
package main
