// Command cachewipe deletes the on-disk thumbnail cache used by the preview
// service. Useful after changing THUMBNAIL_SIZE or to reclaim disk space;
// thumbnails regenerate on demand.
package main
